// Package envelope resolves who a message claims to be from and who actually
// sent it, and whether the two belong to the same organization.
package envelope

import (
	"strings"

	"github.com/synqronlabs/authlens/message"
	"github.com/synqronlabs/authlens/suffix"
	"github.com/synqronlabs/authlens/utils"
)

// Info is the resolved sender information of a message.
//
// An address that could not be resolved is utils.Unknown. Its domain and
// organizational domain are empty, so an Unknown sender never aligns, not
// even with an Unknown From address.
type Info struct {
	// EnvelopeFrom is the SMTP reverse-path, or utils.Unknown.
	EnvelopeFrom string `json:"envelope_from"`

	// EnvelopeTo is the comma-separated list of recipients, or utils.Unknown.
	EnvelopeTo string `json:"envelope_to"`

	// HeaderFromName is the display name of the From header, without quotes.
	HeaderFromName string `json:"header_from_name,omitempty"`

	// HeaderFromAddress is the address of the From header, or utils.Unknown.
	HeaderFromAddress string `json:"header_from_address"`

	HeaderFromDomain   string `json:"header_from_domain,omitempty"`
	EnvelopeFromDomain string `json:"envelope_from_domain,omitempty"`
	HeaderOrgDomain    string `json:"header_org_domain,omitempty"`
	EnvelopeOrgDomain  string `json:"envelope_org_domain,omitempty"`

	// IsDomainAligned reports relaxed alignment of the two domains.
	IsDomainAligned bool `json:"is_domain_aligned"`

	// IsMailingList is set when List-Id or List-Unsubscribe is present.
	IsMailingList bool `json:"is_mailing_list"`
}

// Resolve builds the sender information of a message.
//
// decodedAuthor is the From header as decoded by the caller (MIME words,
// charsets) and takes precedence over the raw header. list selects the
// public suffix list used for alignment; nil means suffix.Curated.
func Resolve(msg message.Message, headers message.HeaderMap, decodedAuthor string, list suffix.List) Info {
	if list == nil {
		list = suffix.Curated
	}

	var info Info
	info.EnvelopeFrom = envelopeFrom(msg, headers)
	info.EnvelopeTo = envelopeTo(msg, headers)

	fromRaw := firstNonEmpty(decodedAuthor, headers.Get(message.HeaderFrom))
	if fromRaw == "" {
		info.HeaderFromAddress = utils.Unknown
	} else {
		info.HeaderFromName, info.HeaderFromAddress = SplitAddress(fromRaw)
		if info.HeaderFromAddress == "" {
			info.HeaderFromAddress = utils.Unknown
		}
	}

	info.HeaderFromDomain = domainOf(info.HeaderFromAddress)
	info.EnvelopeFromDomain = domainOf(info.EnvelopeFrom)
	info.HeaderOrgDomain = list.OrganizationalDomain(info.HeaderFromDomain)
	info.EnvelopeOrgDomain = list.OrganizationalDomain(info.EnvelopeFromDomain)
	info.IsDomainAligned = suffix.Aligned(list, info.HeaderFromDomain, info.EnvelopeFromDomain)

	info.IsMailingList = headers.Has(message.HeaderListID) || headers.Has(message.HeaderListUnsubscribe)
	return info
}

// SplitAddress splits "Display Name <user@example.com>" into its name, with
// double quotes removed, and address. Strings without a bracketed address are
// returned as the address, minus a leading "<" and trailing ">".
func SplitAddress(s string) (name, addr string) {
	if lt := strings.IndexByte(s, '<'); lt >= 0 {
		if gt := strings.IndexByte(s[lt+1:], '>'); gt > 0 {
			name = strings.TrimSpace(strings.ReplaceAll(s[:lt], `"`, ""))
			addr = strings.TrimSpace(s[lt+1 : lt+1+gt])
			return name, addr
		}
	}
	return "", utils.TrimAngle(s)
}

func envelopeFrom(msg message.Message, headers message.HeaderMap) string {
	if from := utils.TrimAngle(msg.EnvelopeFrom()); from != "" {
		return from
	}
	// "<>" is the null reverse-path and leaves nothing after trimming.
	if rp := utils.TrimAngle(headers.Get(message.HeaderReturnPath)); rp != "" {
		return rp
	}
	if msg.Author != "" {
		if _, addr := SplitAddress(msg.Author); addr != "" {
			return addr
		}
	}
	return utils.Unknown
}

func envelopeTo(msg message.Message, headers message.HeaderMap) string {
	for _, list := range [][]string{
		headers.Values(message.HeaderDeliveredTo),
		msg.EnvelopeTo(),
		msg.Recipients,
	} {
		if s := strings.TrimSpace(strings.Join(list, ", ")); s != "" {
			return s
		}
	}
	return utils.Unknown
}

// domainOf returns the lower-cased domain of addr, or "" for the Unknown
// sentinel.
func domainOf(addr string) string {
	if addr == "" || addr == utils.Unknown {
		return ""
	}
	return utils.DomainOf(addr)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
