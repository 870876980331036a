package authlens

import (
	"time"

	"github.com/tinylib/msgp/msgp"

	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/envelope"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/verdict"
)

// The MessagePack encoding mirrors the JSON one: every struct is a map keyed
// by its JSON field name. Unknown keys are skipped when decoding so reports
// written by newer versions remain readable.

// MarshalMsg implements msgp.Marshaler.
func (r *Report) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendMapHeader(b, 6)
	b = appendString(b, "generation", r.Generation)
	b = msgp.AppendString(b, "envelope")
	b = appendInfo(b, r.Envelope)
	b = msgp.AppendString(b, "auth")
	b = appendResults(b, r.Auth)
	b = msgp.AppendString(b, "route")
	b = msgp.AppendArrayHeader(b, uint32(len(r.Route)))
	for _, h := range r.Route {
		b = appendHop(b, h)
	}
	b = msgp.AppendString(b, "verdict")
	b = appendVerdict(b, r.Verdict)
	b = appendString(b, "note", string(r.Note))
	return b, nil
}

// UnmarshalMsg implements msgp.Unmarshaler.
func (r *Report) UnmarshalMsg(b []byte) ([]byte, error) {
	return readMap(b, func(key string, b []byte) ([]byte, error) {
		switch key {
		case "generation":
			return readString(b, &r.Generation)
		case "envelope":
			return readInfo(b, &r.Envelope)
		case "auth":
			return readResults(b, &r.Auth)
		case "route":
			n, b, err := msgp.ReadArrayHeaderBytes(b)
			if err != nil {
				return b, err
			}
			r.Route = make([]route.Hop, n)
			for i := range r.Route {
				if b, err = readHop(b, &r.Route[i]); err != nil {
					return b, msgp.WrapError(err, i)
				}
			}
			return b, nil
		case "verdict":
			return readVerdict(b, &r.Verdict)
		case "note":
			return readString(b, &r.Note)
		}
		return msgp.Skip(b)
	})
}

func appendString(b []byte, key, value string) []byte {
	return msgp.AppendString(msgp.AppendString(b, key), value)
}

func appendBool(b []byte, key string, value bool) []byte {
	return msgp.AppendBool(msgp.AppendString(b, key), value)
}

func appendInt64(b []byte, key string, value int64) []byte {
	return msgp.AppendInt64(msgp.AppendString(b, key), value)
}

func appendStrings(b []byte, key string, values []string) []byte {
	b = msgp.AppendArrayHeader(msgp.AppendString(b, key), uint32(len(values)))
	for _, v := range values {
		b = msgp.AppendString(b, v)
	}
	return b
}

// appendTime encodes the zero time as nil.
func appendTime(b []byte, key string, t time.Time) []byte {
	b = msgp.AppendString(b, key)
	if t.IsZero() {
		return msgp.AppendNil(b)
	}
	return msgp.AppendTime(b, t)
}

func appendInfo(b []byte, v envelope.Info) []byte {
	b = msgp.AppendMapHeader(b, 10)
	b = appendString(b, "envelope_from", v.EnvelopeFrom)
	b = appendString(b, "envelope_to", v.EnvelopeTo)
	b = appendString(b, "header_from_name", v.HeaderFromName)
	b = appendString(b, "header_from_address", v.HeaderFromAddress)
	b = appendString(b, "header_from_domain", v.HeaderFromDomain)
	b = appendString(b, "envelope_from_domain", v.EnvelopeFromDomain)
	b = appendString(b, "header_org_domain", v.HeaderOrgDomain)
	b = appendString(b, "envelope_org_domain", v.EnvelopeOrgDomain)
	b = appendBool(b, "is_domain_aligned", v.IsDomainAligned)
	b = appendBool(b, "is_mailing_list", v.IsMailingList)
	return b
}

func appendResults(b []byte, v authres.Results) []byte {
	b = msgp.AppendMapHeader(b, 4)

	b = msgp.AppendMapHeader(msgp.AppendString(b, "spf"), 3)
	b = appendString(b, "status", string(v.SPF.Status))
	b = appendString(b, "domain", v.SPF.Detail.Domain)
	b = appendString(b, "ip", v.SPF.Detail.IP)

	b = msgp.AppendMapHeader(msgp.AppendString(b, "dkim"), 2)
	b = appendString(b, "status", string(v.DKIM.Status))
	b = appendStrings(b, "domains", v.DKIM.Detail.Domains)

	b = msgp.AppendMapHeader(msgp.AppendString(b, "dmarc"), 3)
	b = appendString(b, "status", string(v.DMARC.Status))
	b = appendString(b, "domain", v.DMARC.Detail.Domain)
	b = appendString(b, "policy", string(v.DMARC.Detail.Policy))

	t := v.Trust
	b = msgp.AppendMapHeader(msgp.AppendString(b, "trust"), 8)
	b = appendString(b, "last_received_by", t.LastReceivedBy)
	b = appendInt64(b, "policy", int64(t.Policy))
	b = appendInt64(b, "trusted", int64(t.Trusted))
	b = appendInt64(b, "discarded", int64(t.Discarded))
	b = appendBool(b, "fell_back", t.FellBack)
	b = appendInt64(b, "arc", int64(t.ARC))
	b = appendInt64(b, "lenient", int64(t.Lenient))
	b = appendStrings(b, "authserv_ids", t.AuthServIDs)
	return b
}

func appendHop(b []byte, h route.Hop) []byte {
	b = msgp.AppendMapHeader(b, 8)
	b = appendString(b, "from", h.From)
	b = appendString(b, "by", h.By)
	b = appendString(b, "with", h.With)
	b = appendString(b, "id", h.ID)
	b = appendString(b, "for", h.For)
	b = appendTime(b, "date", h.Date)
	b = appendString(b, "raw", h.Raw)

	b = msgp.AppendMapHeader(msgp.AppendString(b, "delay"), 4)
	b = appendString(b, "class", string(h.Delay.Class))
	b = appendInt64(b, "seconds", h.Delay.Seconds)
	b = appendBool(b, "known", h.Delay.Known)
	b = appendString(b, "label", h.Delay.Label)
	return b
}

func appendVerdict(b []byte, v verdict.Verdict) []byte {
	b = msgp.AppendMapHeader(b, 7)
	b = appendBool(b, "is_secure", v.IsSecure)
	b = appendBool(b, "is_spf_ok", v.IsSPFOk)
	b = appendBool(b, "is_dkim_ok", v.IsDKIMOk)
	b = appendBool(b, "is_dmarc_ok", v.IsDMARCOk)
	b = appendString(b, "badge", string(v.Badge))
	b = appendString(b, "reason", string(v.Reason))
	b = appendBool(b, "should_auto_expand", v.ShouldAutoExpand)
	return b
}

// readMap decodes a map, calling field for every key. field must consume
// the value, typically with msgp.Skip for unknown keys.
func readMap(b []byte, field func(key string, b []byte) ([]byte, error)) ([]byte, error) {
	n, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for ; n > 0; n-- {
		var key []byte
		if key, b, err = msgp.ReadMapKeyZC(b); err != nil {
			return b, err
		}
		k := string(key)
		if b, err = field(k, b); err != nil {
			return b, msgp.WrapError(err, k)
		}
	}
	return b, nil
}

func readString[T ~string](b []byte, dst *T) ([]byte, error) {
	s, o, err := msgp.ReadStringBytes(b)
	if err != nil {
		return b, err
	}
	*dst = T(s)
	return o, nil
}

func readBool(b []byte, dst *bool) ([]byte, error) {
	v, o, err := msgp.ReadBoolBytes(b)
	if err != nil {
		return b, err
	}
	*dst = v
	return o, nil
}

func readInt[T ~int | ~int64](b []byte, dst *T) ([]byte, error) {
	v, o, err := msgp.ReadInt64Bytes(b)
	if err != nil {
		return b, err
	}
	*dst = T(v)
	return o, nil
}

// readStrings leaves dst nil for empty arrays.
func readStrings(b []byte, dst *[]string) ([]byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	var out []string
	if n > 0 {
		out = make([]string, n)
	}
	for i := range out {
		if out[i], b, err = msgp.ReadStringBytes(b); err != nil {
			return b, msgp.WrapError(err, i)
		}
	}
	*dst = out
	return b, nil
}

func readTime(b []byte, dst *time.Time) ([]byte, error) {
	if msgp.IsNil(b) {
		*dst = time.Time{}
		return msgp.ReadNilBytes(b)
	}
	t, o, err := msgp.ReadTimeBytes(b)
	if err != nil {
		return b, err
	}
	*dst = t
	return o, nil
}

func readInfo(b []byte, v *envelope.Info) ([]byte, error) {
	return readMap(b, func(key string, b []byte) ([]byte, error) {
		switch key {
		case "envelope_from":
			return readString(b, &v.EnvelopeFrom)
		case "envelope_to":
			return readString(b, &v.EnvelopeTo)
		case "header_from_name":
			return readString(b, &v.HeaderFromName)
		case "header_from_address":
			return readString(b, &v.HeaderFromAddress)
		case "header_from_domain":
			return readString(b, &v.HeaderFromDomain)
		case "envelope_from_domain":
			return readString(b, &v.EnvelopeFromDomain)
		case "header_org_domain":
			return readString(b, &v.HeaderOrgDomain)
		case "envelope_org_domain":
			return readString(b, &v.EnvelopeOrgDomain)
		case "is_domain_aligned":
			return readBool(b, &v.IsDomainAligned)
		case "is_mailing_list":
			return readBool(b, &v.IsMailingList)
		}
		return msgp.Skip(b)
	})
}

func readResults(b []byte, v *authres.Results) ([]byte, error) {
	return readMap(b, func(key string, b []byte) ([]byte, error) {
		switch key {
		case "spf":
			return readMap(b, func(key string, b []byte) ([]byte, error) {
				switch key {
				case "status":
					return readString(b, &v.SPF.Status)
				case "domain":
					return readString(b, &v.SPF.Detail.Domain)
				case "ip":
					return readString(b, &v.SPF.Detail.IP)
				}
				return msgp.Skip(b)
			})
		case "dkim":
			return readMap(b, func(key string, b []byte) ([]byte, error) {
				switch key {
				case "status":
					return readString(b, &v.DKIM.Status)
				case "domains":
					return readStrings(b, &v.DKIM.Detail.Domains)
				}
				return msgp.Skip(b)
			})
		case "dmarc":
			return readMap(b, func(key string, b []byte) ([]byte, error) {
				switch key {
				case "status":
					return readString(b, &v.DMARC.Status)
				case "domain":
					return readString(b, &v.DMARC.Detail.Domain)
				case "policy":
					return readString(b, &v.DMARC.Detail.Policy)
				}
				return msgp.Skip(b)
			})
		case "trust":
			t := &v.Trust
			return readMap(b, func(key string, b []byte) ([]byte, error) {
				switch key {
				case "last_received_by":
					return readString(b, &t.LastReceivedBy)
				case "policy":
					return readInt(b, &t.Policy)
				case "trusted":
					return readInt(b, &t.Trusted)
				case "discarded":
					return readInt(b, &t.Discarded)
				case "fell_back":
					return readBool(b, &t.FellBack)
				case "arc":
					return readInt(b, &t.ARC)
				case "lenient":
					return readInt(b, &t.Lenient)
				case "authserv_ids":
					return readStrings(b, &t.AuthServIDs)
				}
				return msgp.Skip(b)
			})
		}
		return msgp.Skip(b)
	})
}

func readHop(b []byte, h *route.Hop) ([]byte, error) {
	return readMap(b, func(key string, b []byte) ([]byte, error) {
		switch key {
		case "from":
			return readString(b, &h.From)
		case "by":
			return readString(b, &h.By)
		case "with":
			return readString(b, &h.With)
		case "id":
			return readString(b, &h.ID)
		case "for":
			return readString(b, &h.For)
		case "date":
			return readTime(b, &h.Date)
		case "raw":
			return readString(b, &h.Raw)
		case "delay":
			d := &h.Delay
			return readMap(b, func(key string, b []byte) ([]byte, error) {
				switch key {
				case "class":
					return readString(b, &d.Class)
				case "seconds":
					return readInt(b, &d.Seconds)
				case "known":
					return readBool(b, &d.Known)
				case "label":
					return readString(b, &d.Label)
				}
				return msgp.Skip(b)
			})
		}
		return msgp.Skip(b)
	})
}

func readVerdict(b []byte, v *verdict.Verdict) ([]byte, error) {
	return readMap(b, func(key string, b []byte) ([]byte, error) {
		switch key {
		case "is_secure":
			return readBool(b, &v.IsSecure)
		case "is_spf_ok":
			return readBool(b, &v.IsSPFOk)
		case "is_dkim_ok":
			return readBool(b, &v.IsDKIMOk)
		case "is_dmarc_ok":
			return readBool(b, &v.IsDMARCOk)
		case "badge":
			return readString(b, &v.Badge)
		case "reason":
			return readString(b, &v.Reason)
		case "should_auto_expand":
			return readBool(b, &v.ShouldAutoExpand)
		}
		return msgp.Skip(b)
	})
}
