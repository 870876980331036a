package utils

import (
	"strings"
	"unicode/utf8"
)

// Unknown is the sentinel used for addresses that could not be resolved.
const Unknown = "Unknown"

// ContainsNonASCII checks if a string contains any non-ASCII characters (bytes > 127).
// Display names decoded from MIME encoded-words are the usual case.
func ContainsNonASCII(s string) bool {
	for _, v := range s {
		if v >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// EqualFoldASCII compares two strings ignoring ASCII case.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// TrimAngle removes one leading "<" and one trailing ">" and surrounding
// whitespace, as found around Return-Path and smtp.mailfrom values.
func TrimAngle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimSpace(s)
}

// DomainOf returns the lower-cased part after the last "@" of addr, or the
// whole lower-cased string if addr has no "@".
func DomainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		addr = addr[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(addr))
}

// CollapseSpace replaces every run of whitespace (including folded CRLF
// sequences) with a single space and trims the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
