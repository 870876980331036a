// Package suffix resolves domains to their organizational domain as defined
// by RFC 7489 Section 3.2: the registrable domain directly under a public
// suffix. For example:
//   - example.com -> example.com
//   - aaa.bbb.google.com -> google.com
//   - mail.example.co.jp -> example.co.jp
//
// The default resolver, Curated, uses a small static table of multi-label
// suffixes and treats any other final label as a single-level TLD. ICANN
// consults the full Public Suffix List compiled into golang.org/x/net.
package suffix

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/synqronlabs/authlens/dns"
)

// List maps domains to public suffixes and organizational domains.
// Implementations must be safe for concurrent use.
type List interface {
	// OrganizationalDomain returns the public suffix plus one label.
	OrganizationalDomain(domain string) string

	// PublicSuffix returns the public suffix of domain.
	PublicSuffix(domain string) string
}

// Table is an immutable set of multi-label public suffixes.
type Table struct {
	set map[string]struct{}
}

// NewTable builds a Table from the given suffixes. Entries are normalized
// (lower-cased, trailing dot removed); empty entries are ignored.
func NewTable(entries ...string) Table {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e = dns.Normalize(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return Table{set: set}
}

// Curated is the process-wide curated table. It is built once at package
// initialization and never modified.
var Curated = NewTable(curatedEntries[:]...)

// Contains reports whether suffix is a member of the table.
func (t Table) Contains(suffix string) bool {
	_, ok := t.set[dns.Normalize(suffix)]
	return ok
}

// OrganizationalDomain returns the organizational domain of domain.
//
// Candidate suffixes are checked from the longest to the shortest so that a
// three-label suffix such as s3.amazonaws.com wins over amazonaws.com. When no
// candidate is in the table the last two labels are returned.
func (t Table) OrganizationalDomain(domain string) string {
	labels := dns.Labels(domain)
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}

	for i := 1; i <= len(labels)-2; i++ {
		if t.Contains(strings.Join(labels[i:], ".")) {
			return strings.Join(labels[i-1:], ".")
		}
	}

	return strings.Join(labels[len(labels)-2:], ".")
}

// PublicSuffix returns the longest table suffix of domain, or its last label.
func (t Table) PublicSuffix(domain string) string {
	labels := dns.Labels(domain)
	if len(labels) == 0 {
		return ""
	}
	for i := 1; i <= len(labels)-2; i++ {
		s := strings.Join(labels[i:], ".")
		if t.Contains(s) {
			return s
		}
	}
	return labels[len(labels)-1]
}

type icann struct{}

// ICANN resolves domains with the Public Suffix List bundled in
// golang.org/x/net/publicsuffix. Despite the name it covers the whole list,
// private suffixes such as github.io included.
var ICANN List = icann{}

func (icann) OrganizationalDomain(domain string) string {
	domain = dns.Normalize(domain)
	if domain == "" {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		// localhost, bare suffixes and malformed names.
		return domain
	}
	return etld1
}

func (icann) PublicSuffix(domain string) string {
	suffix, _ := publicsuffix.PublicSuffix(dns.Normalize(domain))
	return suffix
}

// OrganizationalDomain returns the organizational domain of domain using the
// curated table.
func OrganizationalDomain(domain string) string {
	return Curated.OrganizationalDomain(domain)
}

// Aligned reports relaxed alignment: both domains have the same, non-empty
// organizational domain under list. A nil list means Curated.
func Aligned(list List, a, b string) bool {
	if list == nil {
		list = Curated
	}
	oa := list.OrganizationalDomain(a)
	return oa != "" && oa == list.OrganizationalDomain(b)
}
