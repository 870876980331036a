package authres

import (
	"fmt"
	"strings"
)

// Header is a parsed Authentication-Results or ARC-Authentication-Results
// header per RFC 8601 Section 2.2.
type Header struct {
	// Instance is the ARC instance (i= tag), or 0 for Authentication-Results.
	Instance int `json:"instance,omitempty"`

	// AuthServID identifies the host that performed the checks, lower-cased.
	AuthServID string `json:"authserv_id"`

	// Version is the optional authres-version following the authserv-id.
	Version string `json:"version,omitempty"`

	// Methods holds one entry per resinfo. Empty for "none" headers.
	Methods []Method `json:"methods,omitempty"`

	// Lenient is set when the header did not follow the grammar and was
	// recovered by splitting on top-level semicolons.
	Lenient bool `json:"lenient,omitempty"`

	// Raw is the header value as given.
	Raw string `json:"raw"`
}

// Method is a single resinfo: "dkim=pass (comment) header.d=example.com".
type Method struct {
	// Method is the lower-cased method name, e.g. "spf", "dkim", "dmarc".
	Method string `json:"method"`

	// Version is the optional method version ("dkim/1").
	Version string `json:"version,omitempty"`

	// Result is the lower-cased result keyword, e.g. "pass".
	Result string `json:"result"`

	// Reason is the value of a reason= clause, if any.
	Reason string `json:"reason,omitempty"`

	Properties []Property `json:"properties,omitempty"`

	// Comments are the texts of all comments inside the resinfo, without
	// the enclosing parentheses.
	Comments []string `json:"comments,omitempty"`

	// Raw is the resinfo text without the leading semicolon.
	Raw string `json:"raw"`
}

// Property is a propspec such as "smtp.mailfrom=user@example.com". Type is
// lower-cased and empty for non-standard bare "name=value" pairs such as
// Microsoft's "action=none".
type Property struct {
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Prop returns the value of the first property with the given type and name.
func (m Method) Prop(ptype, name string) (string, bool) {
	for _, p := range m.Properties {
		if p.Type == ptype && p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// parseErr is an internal parsing error.
type parseErr string

func (e parseErr) Error() string {
	return string(e)
}

// ParseHeader parses an Authentication-Results header value.
//
// Unlike the analysis in Parse, ParseHeader is strict and returns an error
// wrapping ErrSyntax for values that do not follow RFC 8601, so callers can
// tell well-formed headers from recovered ones.
func ParseHeader(value string) (hdr *Header, rerr error) {
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		if err, ok := x.(parseErr); ok {
			hdr = nil
			rerr = fmt.Errorf("%w: %s", ErrSyntax, err)
			return
		}
		panic(x)
	}()

	p := newParser(value)
	hdr = &Header{Raw: value}

	p.cfws()
	hdr.AuthServID = toLower(p.xvalue())
	p.cfws()
	if !p.empty() && isdigit(p.s[p.o]) {
		hdr.Version = p.xdigits()
		p.cfws()
	}

	for {
		p.cfws()
		if p.empty() {
			break
		}
		p.xtake(";")
		p.cfws()
		if p.empty() {
			// Trailing semicolon, seen in the wild.
			break
		}
		if p.prefix("none") && p.restIsCFWS(len("none")) {
			p.xtaken(len("none"))
			p.cfws()
			if len(hdr.Methods) > 0 {
				p.xerrorf("none after results")
			}
			continue
		}
		hdr.Methods = append(hdr.Methods, p.xresinfo())
	}
	p.comments = nil

	return hdr, nil
}

// parser holds state for parsing Authentication-Results values.
type parser struct {
	s        string   // Original string
	lower    string   // Lower-cased string for case-insensitive matching
	o        int      // Current offset
	comments []string // Comments collected by cfws since the last reset
}

// toLower lower-cases ASCII A-Z without affecting other bytes.
func toLower(s string) string {
	r := []byte(s)
	for i, c := range r {
		if c >= 'A' && c <= 'Z' {
			r[i] = c + 0x20
		}
	}
	return string(r)
}

func newParser(s string) *parser {
	return &parser{
		s:     s,
		lower: toLower(s),
	}
}

func (p *parser) xerrorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.o < len(p.s) {
		msg += fmt.Sprintf(" (remain %q)", p.s[p.o:])
	}
	panic(parseErr(msg))
}

func (p *parser) empty() bool {
	return p.o >= len(p.s)
}

func (p *parser) peek(b byte) bool {
	return p.o < len(p.s) && p.s[p.o] == b
}

// prefix returns true if the remaining string starts with s (case-insensitive).
func (p *parser) prefix(s string) bool {
	return strings.HasPrefix(p.lower[p.o:], s)
}

func (p *parser) take(s string) bool {
	if p.prefix(s) {
		p.o += len(s)
		return true
	}
	return false
}

func (p *parser) xtaken(n int) string {
	r := p.lower[p.o : p.o+n]
	p.o += n
	return r
}

func (p *parser) xtake(s string) string {
	if !p.prefix(s) {
		p.xerrorf("expected %q", s)
	}
	return p.xtaken(len(s))
}

// restIsCFWS reports whether only whitespace, comments or a semicolon follow
// the next n bytes.
func (p *parser) restIsCFWS(n int) bool {
	q := &parser{s: p.s, lower: p.lower, o: p.o + n}
	defer func() {
		_ = recover()
	}()
	q.cfws()
	return q.empty() || q.peek(';')
}

// cfws consumes folding whitespace and comments, collecting comment texts.
func (p *parser) cfws() {
	for !p.empty() {
		switch p.s[p.o] {
		case ' ', '\t', '\r', '\n':
			p.o++
		case '(':
			p.comments = append(p.comments, p.xcomment())
		default:
			return
		}
	}
}

// xcomment parses a possibly nested comment and returns its inner text.
func (p *parser) xcomment() string {
	start := p.o
	depth := 0
	for !p.empty() {
		switch p.s[p.o] {
		case '\\':
			p.o++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.o++
				return strings.TrimSpace(p.s[start+1 : p.o-1])
			}
		}
		p.o++
	}
	p.o = start
	p.xerrorf("unterminated comment")
	panic("not reached")
}

func (p *parser) xtakefn1(fn func(byte, int) bool) string {
	for i, b := range []byte(p.s[p.o:]) {
		if !fn(b, i) {
			if i == 0 {
				p.xerrorf("expected at least one char")
			}
			r := p.s[p.o : p.o+i]
			p.o += i
			return r
		}
	}
	if p.empty() {
		p.xerrorf("expected at least 1 char")
	}
	r := p.s[p.o:]
	p.o += len(r)
	return r
}

func (p *parser) xdigits() string {
	return p.xtakefn1(func(b byte, _ int) bool {
		return isdigit(b)
	})
}

// xkeyword parses a method, result or ptype keyword. Underscores are
// tolerated after the first character, as in "x_ms_exchange".
func (p *parser) xkeyword() string {
	return p.xtakefn1(func(b byte, i int) bool {
		return isalphadigit(b) || i > 0 && (b == '-' || b == '_')
	})
}

// xquoted parses a quoted-string and returns its unescaped content.
func (p *parser) xquoted() string {
	p.xtake(`"`)
	var b strings.Builder
	for !p.empty() {
		c := p.s[p.o]
		switch c {
		case '\\':
			p.o++
			if p.empty() {
				p.xerrorf("unterminated quoted-string")
			}
			b.WriteByte(p.s[p.o])
		case '"':
			p.o++
			return b.String()
		default:
			b.WriteByte(c)
		}
		p.o++
	}
	p.xerrorf("unterminated quoted-string")
	panic("not reached")
}

// xvalue parses a value: a quoted-string or a run of characters up to
// whitespace, a comment or a semicolon. The run form accepts the
// "[local-part@]domain" and bracketed address forms used by pvalue.
func (p *parser) xvalue() string {
	if p.peek('"') {
		return p.xquoted()
	}
	return p.xtakefn1(func(b byte, _ int) bool {
		return b > ' ' && b != ';' && b != '(' && b != ')' && b < 0x7f || b >= 0x80
	})
}

// xresinfo parses one resinfo after its semicolon.
func (p *parser) xresinfo() Method {
	p.comments = nil
	start := p.o

	var m Method
	m.Method = toLower(p.xkeyword())
	p.cfws()
	if p.take("/") {
		p.cfws()
		m.Version = p.xdigits()
		p.cfws()
	}
	p.xtake("=")
	p.cfws()
	m.Result = toLower(p.xkeyword())

	for {
		p.cfws()
		if p.empty() || p.peek(';') {
			m.Raw = strings.TrimSpace(p.s[start:p.o])
			break
		}

		name := toLower(p.xkeyword())
		p.cfws()
		if p.take(".") {
			p.cfws()
			prop := toLower(p.xpropname())
			p.cfws()
			p.xtake("=")
			p.cfws()
			m.Properties = append(m.Properties, Property{Type: name, Name: prop, Value: p.xvalue()})
			continue
		}

		p.xtake("=")
		p.cfws()
		v := p.xvalue()
		if name == "reason" && m.Reason == "" {
			m.Reason = v
			continue
		}
		m.Properties = append(m.Properties, Property{Name: name, Value: v})
	}

	m.Comments = p.comments
	p.comments = nil
	return m
}

// xpropname parses a property name. RFC 8601 allows dots inside, as in
// "header.b" or vendor "policy.published-domain-policy".
func (p *parser) xpropname() string {
	return p.xtakefn1(func(b byte, i int) bool {
		return isalphadigit(b) || i > 0 && (b == '-' || b == '_' || b == '.')
	})
}

func isdigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isalpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isalphadigit(b byte) bool {
	return isdigit(b) || isalpha(b)
}
