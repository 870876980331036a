// Package message models the inputs of the analysis: the header map of a
// single message and the loosely structured message record a mail client
// exposes next to it.
package message

import (
	"strings"
)

// Header names consulted by the analysis, in lower case.
const (
	HeaderFrom                     = "from"
	HeaderReturnPath               = "return-path"
	HeaderDeliveredTo              = "delivered-to"
	HeaderReceived                 = "received"
	HeaderAuthenticationResults    = "authentication-results"
	HeaderARCAuthenticationResults = "arc-authentication-results"
	HeaderListID                   = "list-id"
	HeaderListUnsubscribe          = "list-unsubscribe"
)

// HeaderMap maps lower-case header names to their raw values in the order
// they appear in the message. Trace headers (Received, Authentication-Results)
// are therefore most-recent-first.
//
// A HeaderMap is treated as immutable by every consumer in this module.
type HeaderMap map[string][]string

// NewHeaderMap builds a HeaderMap from m, lower-casing keys. Values of keys
// that differ only in case are concatenated in map iteration order, so
// callers that care about ordering should pass already lower-cased keys.
func NewHeaderMap(m map[string][]string) HeaderMap {
	h := make(HeaderMap, len(m))
	for k, v := range m {
		lk := strings.ToLower(k)
		h[lk] = append(h[lk], v...)
	}
	return h
}

// Values returns all values of the named header. The returned slice must not
// be modified.
func (h HeaderMap) Values(name string) []string {
	return h[strings.ToLower(name)]
}

// Get returns the first value of the named header, or "".
func (h HeaderMap) Get(name string) string {
	if v := h.Values(name); len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether the named header has at least one non-empty value.
func (h HeaderMap) Has(name string) bool {
	for _, v := range h.Values(name) {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Envelope is the SMTP envelope as recorded by the delivering client.
type Envelope struct {
	// From is the reverse-path (MAIL FROM). Empty if unknown.
	From string `json:"from,omitempty"`

	// To lists the forward-paths (RCPT TO).
	To []string `json:"to,omitempty"`
}

// Message is the message record supplied alongside the header map.
// Every field is optional.
type Message struct {
	// Envelope is nil when the client did not record the SMTP envelope.
	Envelope *Envelope `json:"envelope,omitempty"`

	// Author is the decoded From string, e.g. "Name <user@example.com>".
	Author string `json:"author,omitempty"`

	// Recipients lists the decoded To recipients.
	Recipients []string `json:"recipients,omitempty"`
}

// EnvelopeFrom returns the envelope sender or "".
func (m Message) EnvelopeFrom() string {
	if m.Envelope == nil {
		return ""
	}
	return strings.TrimSpace(m.Envelope.From)
}

// EnvelopeTo returns the envelope recipients or nil.
func (m Message) EnvelopeTo() []string {
	if m.Envelope == nil {
		return nil
	}
	return m.Envelope.To
}
