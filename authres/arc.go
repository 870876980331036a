package authres

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseARCHeader parses an ARC-Authentication-Results header value. The
// value must start with an "i=N;" instance tag, followed by the same syntax
// as Authentication-Results.
func ParseARCHeader(value string) (*Header, error) {
	instance, rest, err := splitInstance(value)
	if err != nil {
		return nil, err
	}
	hdr, err := ParseHeader(rest)
	if err != nil {
		return nil, err
	}
	hdr.Instance = instance
	hdr.Raw = value
	return hdr, nil
}

// splitInstance strips the leading instance tag from an ARC header value.
func splitInstance(value string) (int, string, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || toLower(value[:2]) != "i=" {
		return 0, "", fmt.Errorf("%w: missing i= tag", ErrInvalidInstance)
	}
	idx := strings.IndexByte(value, ';')
	if idx < 0 {
		return 0, "", fmt.Errorf("%w: missing semicolon after i= tag", ErrSyntax)
	}
	instance, err := strconv.Atoi(strings.TrimSpace(value[2:idx]))
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}
	if instance < 1 || instance > MaxInstance {
		return 0, "", fmt.Errorf("%w: %d out of range", ErrInvalidInstance, instance)
	}
	return instance, value[idx+1:], nil
}

// parseLenient recovers what it can from a value ParseHeader rejected.
// The value is split on semicolons outside comments and quoted strings;
// the first part holds the authserv-id and every later part that contains
// "method=result" becomes a Method.
func parseLenient(value string) *Header {
	hdr := &Header{Raw: value, Lenient: true}
	parts := splitTopLevel(value)
	if len(parts) == 0 {
		return hdr
	}
	if f := strings.Fields(stripComments(parts[0])); len(f) > 0 {
		hdr.AuthServID = toLower(f[0])
	}
	for _, part := range parts[1:] {
		if m, ok := lenientMethod(part); ok {
			hdr.Methods = append(hdr.Methods, m)
		}
	}
	return hdr
}

// parseLenientARC is parseLenient for ARC values. An invalid instance tag
// leaves Instance zero.
func parseLenientARC(value string) *Header {
	instance, rest, err := splitInstance(value)
	if err != nil {
		rest = value
		if t := strings.TrimSpace(value); len(t) >= 2 && toLower(t[:2]) == "i=" {
			if idx := strings.IndexByte(t, ';'); idx >= 0 {
				rest = t[idx+1:]
			}
		}
	}
	hdr := parseLenient(rest)
	hdr.Instance = instance
	hdr.Raw = value
	return hdr
}

// lenientMethod parses one resinfo, first with the strict grammar and then
// by picking "key=value" words out of the text.
func lenientMethod(part string) (m Method, ok bool) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Method{}, false
	}
	if m, ok := strictMethod(part); ok {
		return m, true
	}

	m.Raw = part
	p := newParser(part)
	for !p.empty() {
		switch c := p.s[p.o]; {
		case c == '(':
			func() {
				defer func() {
					if recover() != nil {
						// Unterminated comment: keep the rest as its text.
						m.Comments = append(m.Comments, strings.TrimSpace(p.s[p.o+1:]))
						p.o = len(p.s)
					}
				}()
				m.Comments = append(m.Comments, p.xcomment())
			}()
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.o++
		default:
			start := p.o
			for !p.empty() && !strings.ContainsRune(" \t\r\n(", rune(p.s[p.o])) {
				p.o++
			}
			word := p.s[start:p.o]
			k, v, found := strings.Cut(word, "=")
			if !found || k == "" {
				continue
			}
			k = toLower(k)
			v = strings.Trim(v, `"`)
			switch {
			case m.Method == "":
				m.Method, _, _ = strings.Cut(k, "/")
				m.Result = toLower(v)
			case k == "reason" && m.Reason == "":
				m.Reason = v
			default:
				ptype, name, dotted := strings.Cut(k, ".")
				if !dotted {
					ptype, name = "", k
				}
				m.Properties = append(m.Properties, Property{Type: ptype, Name: name, Value: v})
			}
		}
	}
	return m, m.Method != "" && m.Result != ""
}

// strictMethod parses part as a single resinfo, reporting false on any
// syntax error or trailing input.
func strictMethod(part string) (m Method, ok bool) {
	defer func() {
		if x := recover(); x != nil {
			if _, isParseErr := x.(parseErr); !isParseErr {
				panic(x)
			}
			ok = false
		}
	}()
	p := newParser(part)
	p.cfws()
	m = p.xresinfo()
	return m, p.empty()
}

// splitTopLevel splits s on semicolons that are not inside a comment or a
// quoted string. Empty parts are kept so the first part is always the
// authserv-id.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			i++
		case c == '"' && depth == 0:
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// stripComments removes top-level comments from s.
func stripComments(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && depth > 0:
			i++
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}
