package authres

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/synqronlabs/authlens/dns"
	"github.com/synqronlabs/authlens/message"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/utils"
)

// Free-text phrases receivers put in SPF and DMARC comments.
var (
	domainOfRe   = regexp.MustCompile(`(?i)domain\s+of\s+([^;\s()]+)`)
	designatesRe = regexp.MustCompile(`(?i)designates\s+([^\s;()]+)\s+as\s+permitted\s+sender`)
	clientIPRe   = regexp.MustCompile(`(?i)client-ip=([^;\s()]+)`)
	policyRe     = regexp.MustCompile(`(?i)\bp=(reject|quarantine|none)\b`)
)

// Parse extracts the SPF, DKIM and DMARC outcomes of a message.
//
// Authentication-Results headers are filtered by authserv-id against the
// topmost Received "by" host (see Options.Policy for the case where none
// matches). ARC-Authentication-Results headers are always used, after the
// regular ones. A mechanism with no result in the used headers is "none".
//
// Parse never fails. Malformed headers are recovered leniently and counted
// in Trust.Lenient.
func Parse(headers message.HeaderMap, opts Options) Results {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lastBy := route.LastBy(headers)
	used, trust := filterTrusted(headers.Values(message.HeaderAuthenticationResults), lastBy, opts.Policy)

	for _, v := range headers.Values(message.HeaderARCAuthenticationResults) {
		hdr, err := ParseARCHeader(v)
		if err != nil {
			logger.Debug("recovering malformed ARC-Authentication-Results",
				slog.String("error", err.Error()))
			hdr = parseLenientARC(v)
		}
		used = append(used, hdr)
		trust.ARC++
	}

	for _, h := range used {
		if h.Lenient {
			trust.Lenient++
		}
		trust.AuthServIDs = append(trust.AuthServIDs, h.AuthServID)
	}

	logger.Debug("authentication results filtered",
		slog.String("last_received_by", lastBy),
		slog.String("policy", opts.Policy.String()),
		slog.Int("trusted", trust.Trusted),
		slog.Int("discarded", trust.Discarded),
		slog.Bool("fell_back", trust.FellBack),
		slog.Int("arc", trust.ARC),
	)

	return Results{
		SPF: SPFResult{
			Status: firstStatus(used, "spf"),
			Detail: spfDetail(used),
		},
		DKIM: DKIMResult{
			Status: dkimStatus(used),
			Detail: dkimDetail(used),
		},
		DMARC: DMARCResult{
			Status: firstStatus(used, "dmarc"),
			Detail: dmarcDetail(used),
		},
		Trust: trust,
	}
}

// filterTrusted parses the Authentication-Results values and keeps those
// whose authserv-id is related to lastBy.
func filterTrusted(values []string, lastBy string, policy TrustPolicy) ([]*Header, Trust) {
	trust := Trust{LastReceivedBy: lastBy, Policy: policy}

	all := make([]*Header, 0, len(values))
	for _, v := range values {
		hdr, err := ParseHeader(v)
		if err != nil {
			hdr = parseLenient(v)
		}
		all = append(all, hdr)
	}

	var trusted []*Header
	if lastBy != "" {
		for _, h := range all {
			if dns.Related(h.AuthServID, lastBy) {
				trusted = append(trusted, h)
			}
		}
	}

	if len(trusted) == 0 && len(all) > 0 && policy == TrustFallbackAll {
		trust.FellBack = true
		trusted = all
	}
	trust.Trusted = len(trusted)
	trust.Discarded = len(all) - len(trusted)
	return trusted, trust
}

func eachMethod(hdrs []*Header, name string, fn func(Method) bool) {
	for _, h := range hdrs {
		for _, m := range h.Methods {
			if m.Method == name && !fn(m) {
				return
			}
		}
	}
}

// firstStatus returns the result of the first method with the given name.
func firstStatus(hdrs []*Header, name string) Status {
	status := StatusNone
	eachMethod(hdrs, name, func(m Method) bool {
		status = Status(m.Result)
		return false
	})
	return status
}

// dkimStatus aggregates all DKIM results: any pass wins, then any fail,
// then the first result seen.
func dkimStatus(hdrs []*Header) Status {
	var first Status
	var passed, failed bool
	eachMethod(hdrs, "dkim", func(m Method) bool {
		s := Status(m.Result)
		if first == "" {
			first = s
		}
		switch s {
		case StatusPass:
			passed = true
			return false
		case StatusFail:
			failed = true
		}
		return true
	})
	switch {
	case passed:
		return StatusPass
	case failed:
		return StatusFail
	case first != "":
		return first
	}
	return StatusNone
}

// addressDomain returns the part after the last "@" of an address, without
// angle brackets, or the whole value when there is no "@".
func addressDomain(v string) string {
	v = utils.TrimAngle(v)
	if i := strings.LastIndexByte(v, '@'); i >= 0 {
		return v[i+1:]
	}
	return v
}

func spfDetail(hdrs []*Header) SPFDetail {
	var d SPFDetail
	eachMethod(hdrs, "spf", func(m Method) bool {
		if v, ok := m.Prop("smtp", "mailfrom"); ok {
			d.Domain = addressDomain(v)
		} else if sm := domainOfRe.FindStringSubmatch(m.Raw); sm != nil {
			d.Domain = addressDomain(sm[1])
		}
		if sm := designatesRe.FindStringSubmatch(m.Raw); sm != nil {
			d.IP = sm[1]
		} else if v, ok := m.Prop("", "client-ip"); ok {
			d.IP = v
		} else if sm := clientIPRe.FindStringSubmatch(m.Raw); sm != nil {
			d.IP = sm[1]
		}
		if d.Domain != "" || d.IP != "" {
			return false
		}
		return true
	})
	return d
}

func dkimDetail(hdrs []*Header) DKIMDetail {
	var d DKIMDetail
	seen := map[string]bool{}
	eachMethod(hdrs, "dkim", func(m Method) bool {
		for _, p := range m.Properties {
			if p.Type != "header" || p.Name != "d" && p.Name != "i" {
				continue
			}
			dom := addressDomain(p.Value)
			if dom == "" || seen[dom] {
				continue
			}
			seen[dom] = true
			d.Domains = append(d.Domains, dom)
		}
		return true
	})
	return d
}

func dmarcDetail(hdrs []*Header) DMARCDetail {
	var d DMARCDetail
	eachMethod(hdrs, "dmarc", func(m Method) bool {
		if v, ok := m.Prop("header", "from"); ok && v != "" {
			d.Domain = addressDomain(v)
		}
		if v, ok := m.Prop("", "p"); ok {
			if p := Policy(toLower(v)); p == PolicyNone || p == PolicyQuarantine || p == PolicyReject {
				d.Policy = p
			}
		} else if sm := policyRe.FindStringSubmatch(m.Raw); sm != nil {
			d.Policy = Policy(toLower(sm[1]))
		}
		return true
	})
	return d
}
