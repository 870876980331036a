// Package dns holds the domain-name helpers shared by the suffix resolver and
// the Authentication-Results trust filter. Nothing here touches the network:
// only the name-handling functions of github.com/miekg/dns are used.
package dns

import (
	"strings"

	"github.com/miekg/dns"
)

// Normalize lower-cases a domain name and strips surrounding whitespace and
// a single trailing dot. An empty or root name yields "".
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return ""
	}
	return strings.TrimSuffix(dns.CanonicalName(name), ".")
}

// Labels splits a domain name into its labels after normalization.
// For example "Mail.Example.co.jp." yields [mail example co jp].
func Labels(name string) []string {
	name = Normalize(name)
	if name == "" {
		return nil
	}
	return dns.SplitDomainName(name)
}

// IsSubdomain returns true if child equals parent or lies below it.
// Both mx.example.com and example.com return true for parent example.com.
func IsSubdomain(child, parent string) bool {
	c := Normalize(child)
	p := Normalize(parent)
	if c == "" || p == "" {
		return false
	}
	return dns.IsSubDomain(dns.Fqdn(p), dns.Fqdn(c))
}

// Related reports whether a and b are equal or one is a subdomain of the other.
func Related(a, b string) bool {
	return IsSubdomain(a, b) || IsSubdomain(b, a)
}
