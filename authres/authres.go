// Package authres extracts SPF, DKIM and DMARC outcomes from the
// Authentication-Results (RFC 8601) and ARC-Authentication-Results
// (RFC 8617) headers of a received message.
//
// Only Authentication-Results headers written by the relay that delivered
// the message are trusted: the authserv-id must name the host found in the
// "by" clause of the topmost Received header, or a domain related to it.
// Headers added upstream can be forged by the sender and are discarded.
//
// Basic usage:
//
//	res := authres.Parse(headers, authres.Options{})
//	if res.DMARC.Status == authres.StatusFail {
//	    // ...
//	}
package authres

import (
	"errors"
	"fmt"
	"log/slog"
)

// Errors returned by the parsers.
var (
	// ErrSyntax indicates a header value that does not follow RFC 8601.
	ErrSyntax = errors.New("authres: syntax error")

	// ErrInvalidInstance indicates an ARC instance tag that is missing or
	// outside 1..MaxInstance.
	ErrInvalidInstance = errors.New("authres: invalid ARC instance")

	// ErrUnknownPolicy is returned when unmarshaling an unknown trust policy.
	ErrUnknownPolicy = errors.New("authres: unknown trust policy")
)

// MaxInstance is the highest ARC instance number allowed by RFC 8617.
const MaxInstance = 50

// Status is the result keyword of an authentication method.
type Status string

// Status values from the IANA "Email Authentication Result Names" registry.
const (
	StatusPass      Status = "pass"
	StatusFail      Status = "fail"
	StatusSoftfail  Status = "softfail"
	StatusNeutral   Status = "neutral"
	StatusNone      Status = "none"
	StatusTemperror Status = "temperror"
	StatusPermerror Status = "permerror"
	StatusPolicy    Status = "policy"
)

// Policy is a DMARC policy as reported in the p= property.
type Policy string

const (
	PolicyNone       Policy = "none"
	PolicyQuarantine Policy = "quarantine"
	PolicyReject     Policy = "reject"
)

// SPFDetail holds what the trusted headers say about the SPF check.
type SPFDetail struct {
	// Domain is the domain of smtp.mailfrom, or of the "domain of" comment.
	Domain string `json:"domain,omitempty"`

	// IP is the client address the check was made for.
	IP string `json:"ip,omitempty"`
}

// DKIMDetail holds the signing domains seen in trusted DKIM results.
type DKIMDetail struct {
	// Domains are the unique header.d and header.i domains in order of
	// appearance.
	Domains []string `json:"domains,omitempty"`
}

// DMARCDetail holds what the trusted headers say about the DMARC check.
type DMARCDetail struct {
	// Domain is the header.from domain of the last DMARC result naming one.
	Domain string `json:"domain,omitempty"`

	// Policy is the published policy, when reported.
	Policy Policy `json:"policy,omitempty"`
}

// SPFResult is the SPF outcome.
type SPFResult struct {
	Status Status    `json:"status"`
	Detail SPFDetail `json:"detail"`
}

// DKIMResult is the aggregated DKIM outcome over all signatures.
type DKIMResult struct {
	Status Status     `json:"status"`
	Detail DKIMDetail `json:"detail"`
}

// DMARCResult is the DMARC outcome.
type DMARCResult struct {
	Status Status      `json:"status"`
	Detail DMARCDetail `json:"detail"`
}

// Results is the outcome of Parse.
type Results struct {
	SPF   SPFResult   `json:"spf"`
	DKIM  DKIMResult  `json:"dkim"`
	DMARC DMARCResult `json:"dmarc"`

	// Trust records which headers were used.
	Trust Trust `json:"trust"`
}

// Trust describes how the trust filter treated the headers of a message.
type Trust struct {
	// LastReceivedBy is the "by" host of the topmost Received header.
	LastReceivedBy string `json:"last_received_by,omitempty"`

	Policy TrustPolicy `json:"policy"`

	// Trusted is the number of Authentication-Results headers used.
	Trusted int `json:"trusted"`

	// Discarded is the number of Authentication-Results headers ignored.
	Discarded int `json:"discarded"`

	// FellBack is set when no header matched and all were used anyway.
	FellBack bool `json:"fell_back,omitempty"`

	// ARC is the number of ARC-Authentication-Results headers used.
	ARC int `json:"arc"`

	// Lenient is the number of used headers that had to be recovered from
	// malformed input.
	Lenient int `json:"lenient,omitempty"`

	// AuthServIDs are the authserv-ids of the used headers, in order.
	AuthServIDs []string `json:"authserv_ids,omitempty"`
}

// TrustPolicy determines what happens when no Authentication-Results header
// was written by the delivering relay.
type TrustPolicy int

const (
	// TrustFallbackAll uses every Authentication-Results header when none
	// matches the delivering relay. This favors showing some result over
	// showing none, at the cost of trusting upstream headers.
	TrustFallbackAll TrustPolicy = iota

	// TrustStrict never uses headers from other hosts. Messages without a
	// matching header report "none" unless ARC results are present.
	TrustStrict
)

var trustPolicyNames = map[TrustPolicy]string{
	TrustFallbackAll: "fallback-all",
	TrustStrict:      "strict",
}

func (p TrustPolicy) String() string {
	if s, ok := trustPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("TrustPolicy(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p TrustPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TrustPolicy) UnmarshalText(b []byte) error {
	s := toLower(string(b))
	for k, v := range trustPolicyNames {
		if v == s {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPolicy, b)
}

// Options configures Parse.
type Options struct {
	// Policy determines the fallback behavior. Default is TrustFallbackAll.
	Policy TrustPolicy

	// Logger receives debug events about trust decisions and recovered
	// headers. Optional.
	Logger *slog.Logger
}
