package route

import (
	"net/mail"
	"strings"
	"time"

	"github.com/synqronlabs/authlens/utils"
)

// Hop is one relay traversal recorded in a Received header (RFC 5321 Section 4.4).
// Absent clauses are empty strings; an absent or unparsable date is the zero time.
type Hop struct {
	// From is the "from" clause text, including any TCP-info comment,
	// e.g. "relay.example.net (relay.example.net [192.0.2.10])".
	From string `json:"from,omitempty"`

	// By is the host that received the message at this hop.
	By string `json:"by,omitempty"`

	// With is the protocol (e.g., "ESMTP", "ESMTPS", "LMTP").
	With string `json:"with,omitempty"`

	// ID is the queue identifier assigned by the receiving host.
	ID string `json:"id,omitempty"`

	// For is the recipient named in the "for" clause, without angle brackets.
	For string `json:"for,omitempty"`

	// Date is when the receiving host accepted the message.
	Date time.Time `json:"date,omitzero"`

	// Raw is the header value as given.
	Raw string `json:"raw"`

	// Delay is the time spent since the previous hop. Set by Reconstruct.
	Delay Delay `json:"delay"`
}

// HasDate reports whether the hop carries a parsable timestamp.
func (h Hop) HasDate() bool {
	return !h.Date.IsZero()
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokComment
	tokSemicolon
)

type token struct {
	kind       tokenKind
	text       string
	start, end int
}

// tokenize splits a Received value into words, comments and semicolons.
// Comments nest and honor backslash escapes; quoted strings stay inside
// their word. Unterminated comments and quotes run to the end of input.
func tokenize(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == ';':
			toks = append(toks, token{tokSemicolon, ";", i, i + 1})
			i++

		case c == '(':
			start := i
			depth := 0
		comment:
			for i < len(s) {
				switch s[i] {
				case '\\':
					i++
				case '(':
					depth++
				case ')':
					depth--
					if depth == 0 {
						i++
						break comment
					}
				}
				i++
			}
			if i > len(s) {
				i = len(s)
			}
			toks = append(toks, token{tokComment, s[start:i], start, i})

		default:
			start := i
			inQuote := false
		word:
			for i < len(s) {
				switch s[i] {
				case '\\':
					if inQuote {
						i++
					}
				case '"':
					inQuote = !inQuote
				case ' ', '\t', '\r', '\n', ';', '(':
					if !inQuote {
						break word
					}
				}
				i++
			}
			if i > len(s) {
				i = len(s)
			}
			toks = append(toks, token{tokWord, s[start:i], start, i})
		}
	}
	return toks
}

// ParseReceived parses a single Received header value. It never fails:
// clauses that cannot be found are left empty and an unparsable date is
// left zero.
//
// Comments are skipped when looking for clause keywords, so a "by" inside
// "(authenticated by ...)" is not mistaken for the receiving host.
func ParseReceived(line string) Hop {
	hop := Hop{Raw: line}
	toks := tokenize(line)

	clauses := toks
	lastSemi := -1
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].kind == tokSemicolon {
			lastSemi = i
			break
		}
	}
	if lastSemi >= 0 {
		clauses = toks[:lastSemi]
		hop.Date = parseDate(line[toks[lastSemi].end:])
	}

	fromIdx := -1
	for i, t := range clauses {
		if t.kind != tokWord {
			continue
		}
		switch strings.ToLower(t.text) {
		case "from":
			if fromIdx < 0 {
				fromIdx = i
				hop.From = fromClause(line, toks, i)
			}
		case "by":
			if hop.By == "" {
				hop.By = nextWord(clauses, i)
			}
		case "with":
			if hop.With == "" {
				hop.With = nextWord(clauses, i)
			}
		case "id":
			if hop.ID == "" {
				hop.ID = nextWord(clauses, i)
			}
		case "for":
			if hop.For == "" {
				hop.For = utils.TrimAngle(nextWord(clauses, i))
			}
		}
	}
	return hop
}

// fromClause returns the raw text after the "from" token at index i up to
// the next "by" word, the next semicolon, or the end of the value.
func fromClause(line string, toks []token, i int) string {
	if i+1 >= len(toks) {
		return ""
	}
	start := toks[i+1].start
	end := len(line)
	for _, t := range toks[i+1:] {
		if t.kind == tokSemicolon || t.kind == tokWord && utils.EqualFoldASCII(t.text, "by") {
			end = t.start
			break
		}
	}
	if start >= end {
		return ""
	}
	return utils.CollapseSpace(line[start:end])
}

// nextWord returns the word directly following index i, or "" if the next
// token is a comment, a semicolon, or there is none.
func nextWord(toks []token, i int) string {
	if i+1 < len(toks) && toks[i+1].kind == tokWord {
		return toks[i+1].text
	}
	return ""
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon Jan 2 15:04:05 2006",
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05",
}

// parseDate parses the date-time after the last semicolon of a Received
// header. Dates without a zone are taken as UTC. It returns the zero time
// when no layout matches.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t
	}

	// Drop comments such as "(PST)" and retry the common layouts.
	var words []string
	for _, t := range tokenize(s) {
		if t.kind == tokWord {
			words = append(words, t.text)
		}
	}
	s = strings.Join(words, " ")
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
