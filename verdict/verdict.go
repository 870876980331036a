// Package verdict combines authentication results and domain alignment into
// a single classification of a message.
package verdict

import (
	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/envelope"
	"github.com/synqronlabs/authlens/utils"
)

// Badge is the overall classification.
type Badge string

const (
	BadgeSecure  Badge = "secure"
	BadgeWarning Badge = "warning"
	BadgeDanger  Badge = "danger"
)

// Reason is the row of the decision table that produced the badge.
type Reason string

const (
	// ReasonAuthPass: SPF and DKIM passed and the domains are aligned.
	ReasonAuthPass Reason = "auth-pass"

	// ReasonAuthFailed: SPF, DKIM or DMARC failed.
	ReasonAuthFailed Reason = "auth-failed"

	// ReasonPassMismatch: SPF or DKIM passed for a domain other than the
	// one in the From header.
	ReasonPassMismatch Reason = "pass-mismatch"

	// ReasonUnverified: nothing conclusive.
	ReasonUnverified Reason = "unverified"
)

// Verdict is the classification of a message.
type Verdict struct {
	IsSecure  bool `json:"is_secure"`
	IsSPFOk   bool `json:"is_spf_ok"`
	IsDKIMOk  bool `json:"is_dkim_ok"`
	IsDMARCOk bool `json:"is_dmarc_ok"`

	Badge  Badge  `json:"badge"`
	Reason Reason `json:"reason"`

	// ShouldAutoExpand asks the presentation layer to show details without
	// user interaction. It is set for every badge except secure.
	ShouldAutoExpand bool `json:"should_auto_expand"`
}

// Classify evaluates the decision table; the first matching row wins.
//
//	spf=pass, dkim=pass, aligned              secure   auth-pass
//	spf, dkim or dmarc = fail                 danger   auth-failed
//	spf or dkim pass, not aligned, sender set warning  pass-mismatch
//	otherwise                                 warning  unverified
//
// An absent DMARC result counts as OK: most domains publish no policy.
func Classify(auth authres.Results, aligned bool, envelopeFrom string) Verdict {
	v := Verdict{
		IsSPFOk:   auth.SPF.Status == authres.StatusPass,
		IsDKIMOk:  auth.DKIM.Status == authres.StatusPass,
		IsDMARCOk: auth.DMARC.Status == authres.StatusPass || auth.DMARC.Status == authres.StatusNone,
	}
	v.IsSecure = v.IsSPFOk && v.IsDKIMOk && aligned

	switch {
	case v.IsSecure:
		v.Badge, v.Reason = BadgeSecure, ReasonAuthPass
	case auth.SPF.Status == authres.StatusFail ||
		auth.DKIM.Status == authres.StatusFail ||
		auth.DMARC.Status == authres.StatusFail:
		v.Badge, v.Reason = BadgeDanger, ReasonAuthFailed
	case (v.IsSPFOk || v.IsDKIMOk) && !aligned && envelopeFrom != utils.Unknown:
		v.Badge, v.Reason = BadgeWarning, ReasonPassMismatch
	default:
		v.Badge, v.Reason = BadgeWarning, ReasonUnverified
	}

	v.ShouldAutoExpand = v.Badge != BadgeSecure
	return v
}

// Note explains the alignment of the From header with the envelope sender.
type Note string

const (
	// NoteOK: aligned and authenticated.
	NoteOK Note = "ok"

	// NoteMailingList: not aligned, but the message came through a mailing
	// list, which usually rewrites the envelope sender.
	NoteMailingList Note = "mailing-list"

	// NoteMismatch: not aligned although SPF or DKIM passed.
	NoteMismatch Note = "mismatch"

	// NoteMismatchUnauthenticated: not aligned and nothing passed.
	NoteMismatchUnauthenticated Note = "mismatch-unauthenticated"

	// NoteAlignedUnauthenticated: aligned, but not authenticated.
	NoteAlignedUnauthenticated Note = "aligned-unauthenticated"

	// NoteNone: nothing to say, typically because the sender is unknown.
	NoteNone Note = "none"
)

// AlignmentNote picks the note shown next to the sender addresses.
func AlignmentNote(env envelope.Info, v Verdict) Note {
	switch {
	case !env.IsDomainAligned && env.EnvelopeFrom != utils.Unknown:
		switch {
		case env.IsMailingList:
			return NoteMailingList
		case v.IsSPFOk || v.IsDKIMOk:
			return NoteMismatch
		default:
			return NoteMismatchUnauthenticated
		}
	case env.IsDomainAligned && v.IsSecure:
		return NoteOK
	case env.IsDomainAligned:
		return NoteAlignedUnauthenticated
	}
	return NoteNone
}

// MismatchDomain returns the envelope sender domain when the message should
// be flagged as passing authentication for a different domain, or "".
func MismatchDomain(env envelope.Info, v Verdict) string {
	if v.Reason == ReasonPassMismatch {
		return env.EnvelopeFromDomain
	}
	return ""
}
