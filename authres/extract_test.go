package authres

import (
	"reflect"
	"testing"

	"github.com/synqronlabs/authlens/message"
)

const topReceived = "from relay.example.net (relay.example.net [192.0.2.10]) by mx.example.com with ESMTPS; Tue, 14 Jan 2025 10:04:00 +0000"

func headersWith(received []string, ar []string, arc []string) message.HeaderMap {
	h := message.HeaderMap{}
	if received != nil {
		h[message.HeaderReceived] = received
	}
	if ar != nil {
		h[message.HeaderAuthenticationResults] = ar
	}
	if arc != nil {
		h[message.HeaderARCAuthenticationResults] = arc
	}
	return h
}

func TestParseTrustFilter(t *testing.T) {
	tests := []struct {
		name      string
		received  []string
		ar        []string
		policy    TrustPolicy
		spf       Status
		trusted   int
		discarded int
		fellBack  bool
	}{
		{
			name:     "forged upstream header is discarded",
			received: []string{topReceived},
			ar: []string{
				"mx.example.com; spf=fail smtp.mailfrom=evil.example",
				"evil.example; spf=pass smtp.mailfrom=evil.example",
			},
			spf:       StatusFail,
			trusted:   1,
			discarded: 1,
		},
		{
			name:     "authserv-id is parent of relay",
			received: []string{topReceived},
			ar:       []string{"example.com; spf=softfail"},
			spf:      StatusSoftfail,
			trusted:  1,
		},
		{
			name:     "authserv-id is child of relay",
			received: []string{topReceived},
			ar:       []string{"filter.mx.example.com; spf=neutral"},
			spf:      StatusNeutral,
			trusted:  1,
		},
		{
			name:     "label boundary is respected",
			received: []string{topReceived},
			ar: []string{
				"notexample.com; spf=pass",
				"mx.example.com; spf=fail",
			},
			spf:       StatusFail,
			trusted:   1,
			discarded: 1,
		},
		{
			name:     "fallback to all headers when none match",
			received: []string{topReceived},
			ar: []string{
				"upstream.example.org; spf=pass",
				"other.example.org; spf=fail",
			},
			spf:      StatusPass,
			trusted:  2,
			fellBack: true,
		},
		{
			name:      "strict policy keeps nothing when none match",
			received:  []string{topReceived},
			ar:        []string{"upstream.example.org; spf=pass"},
			policy:    TrustStrict,
			spf:       StatusNone,
			discarded: 1,
		},
		{
			name:     "no Received header falls back",
			ar:       []string{"mx.example.com; spf=pass"},
			spf:      StatusPass,
			trusted:  1,
			fellBack: true,
		},
		{
			name:      "no Received header under strict policy",
			ar:        []string{"mx.example.com; spf=pass"},
			policy:    TrustStrict,
			spf:       StatusNone,
			discarded: 1,
		},
		{
			name:     "no headers at all",
			received: []string{topReceived},
			spf:      StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(headersWith(tt.received, tt.ar, nil), Options{Policy: tt.policy})
			if res.SPF.Status != tt.spf {
				t.Errorf("SPF = %q, want %q", res.SPF.Status, tt.spf)
			}
			if res.Trust.Trusted != tt.trusted || res.Trust.Discarded != tt.discarded || res.Trust.FellBack != tt.fellBack {
				t.Errorf("Trust = %+v, want trusted %d discarded %d fellBack %v",
					res.Trust, tt.trusted, tt.discarded, tt.fellBack)
			}
			if res.Trust.Policy != tt.policy {
				t.Errorf("Trust.Policy = %v, want %v", res.Trust.Policy, tt.policy)
			}
		})
	}
}

func TestParseARCAlwaysUsed(t *testing.T) {
	h := headersWith(
		[]string{topReceived},
		[]string{"upstream.example.org; dmarc=pass header.from=example.org"},
		[]string{"i=1; upstream.example.org; dmarc=fail header.from=example.org"},
	)

	res := Parse(h, Options{Policy: TrustStrict})
	if res.DMARC.Status != StatusFail {
		t.Errorf("DMARC = %q, want fail from ARC header", res.DMARC.Status)
	}
	if res.Trust.ARC != 1 || res.Trust.Trusted != 0 {
		t.Errorf("Trust = %+v", res.Trust)
	}

	res = Parse(h, Options{})
	if res.DMARC.Status != StatusPass {
		t.Errorf("DMARC = %q, want pass: regular headers come before ARC", res.DMARC.Status)
	}
	if want := []string{"upstream.example.org", "upstream.example.org"}; !reflect.DeepEqual(res.Trust.AuthServIDs, want) {
		t.Errorf("AuthServIDs = %q, want %q", res.Trust.AuthServIDs, want)
	}
}

func TestParseDKIMAggregation(t *testing.T) {
	tests := []struct {
		name string
		ar   []string
		want Status
	}{
		{"fail then pass", []string{"mx.example.com; dkim=fail header.d=a.example; dkim=pass header.d=b.example"}, StatusPass},
		{"pass in second header", []string{"mx.example.com; dkim=fail", "mx.example.com; dkim=pass"}, StatusPass},
		{"fail beats neutral", []string{"mx.example.com; dkim=neutral; dkim=fail"}, StatusFail},
		{"first otherwise", []string{"mx.example.com; dkim=temperror; dkim=neutral"}, StatusTemperror},
		{"no dkim", []string{"mx.example.com; spf=pass"}, StatusNone},
		{"dkim-atps is not dkim", []string{"mx.example.com; dkim-atps=neutral"}, StatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(headersWith([]string{topReceived}, tt.ar, nil), Options{})
			if res.DKIM.Status != tt.want {
				t.Errorf("DKIM = %q, want %q", res.DKIM.Status, tt.want)
			}
		})
	}
}

func TestParseFirstMatch(t *testing.T) {
	res := Parse(headersWith([]string{topReceived}, []string{
		"mx.example.com; spf=softfail smtp.mailfrom=a.example",
		"mx.example.com; spf=pass smtp.mailfrom=b.example",
	}, nil), Options{})
	if res.SPF.Status != StatusSoftfail {
		t.Errorf("SPF = %q, want first match softfail", res.SPF.Status)
	}
	if res.SPF.Detail.Domain != "a.example" {
		t.Errorf("SPF domain = %q, want a.example", res.SPF.Detail.Domain)
	}
}

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name  string
		ar    string
		spf   SPFDetail
		dkim  DKIMDetail
		dmarc DMARCDetail
	}{
		{
			name: "mailfrom with angle brackets",
			ar:   "mx.example.com; spf=pass smtp.mailfrom=<bounce@example.org>",
			spf:  SPFDetail{Domain: "example.org"},
		},
		{
			name: "domain of comment",
			ar:   "mx.example.com; spf=pass (mx.example.com: domain of bounce@example.org designates 192.0.2.1 as permitted sender)",
			spf:  SPFDetail{Domain: "example.org", IP: "192.0.2.1"},
		},
		{
			name: "folded comment",
			ar:   "mx.example.com; spf=pass (mx.example.com: domain of\r\n\tbounce@esp.example designates\r\n\t192.0.2.1 as permitted sender)",
			spf:  SPFDetail{Domain: "esp.example", IP: "192.0.2.1"},
		},
		{
			name: "repeated spaces in comment",
			ar:   "mx.example.com; spf=pass (mx.example.com:  domain  of bounce@esp.example  designates  192.0.2.1  as  permitted  sender)",
			spf:  SPFDetail{Domain: "esp.example", IP: "192.0.2.1"},
		},
		{
			name: "client-ip property",
			ar:   "mx.example.com; spf=softfail smtp.mailfrom=example.net client-ip=198.51.100.7",
			spf:  SPFDetail{Domain: "example.net", IP: "198.51.100.7"},
		},
		{
			name: "dkim domains deduplicated",
			ar:   "mx.example.com; dkim=pass header.d=example.org header.i=@example.org; dkim=pass header.i=news@esp.example.net header.d=esp.example.net",
			dkim: DKIMDetail{Domains: []string{"example.org", "esp.example.net"}},
		},
		{
			name:  "dmarc policy from comment",
			ar:    "mx.example.com; dmarc=fail (p=REJECT sp=NONE dis=NONE) header.from=example.org",
			dmarc: DMARCDetail{Domain: "example.org", Policy: PolicyReject},
		},
		{
			name:  "dmarc policy from property",
			ar:    "mx.example.com; dmarc=pass p=quarantine header.from=example.org",
			dmarc: DMARCDetail{Domain: "example.org", Policy: PolicyQuarantine},
		},
		{
			name:  "dmarc sp alone is not a policy",
			ar:    "mx.example.com; dmarc=pass (sp=reject) header.from=example.org",
			dmarc: DMARCDetail{Domain: "example.org"},
		},
		{
			name:  "last dmarc result wins",
			ar:    "mx.example.com; dmarc=pass header.from=a.example (p=none); dmarc=fail header.from=b.example (p=reject)",
			dmarc: DMARCDetail{Domain: "b.example", Policy: PolicyReject},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(headersWith([]string{topReceived}, []string{tt.ar}, nil), Options{})
			if res.SPF.Detail != tt.spf {
				t.Errorf("SPF detail = %+v, want %+v", res.SPF.Detail, tt.spf)
			}
			if !reflect.DeepEqual(res.DKIM.Detail, tt.dkim) {
				t.Errorf("DKIM detail = %+v, want %+v", res.DKIM.Detail, tt.dkim)
			}
			if res.DMARC.Detail != tt.dmarc {
				t.Errorf("DMARC detail = %+v, want %+v", res.DMARC.Detail, tt.dmarc)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	res := Parse(message.HeaderMap{}, Options{})
	want := Results{
		SPF:   SPFResult{Status: StatusNone},
		DKIM:  DKIMResult{Status: StatusNone},
		DMARC: DMARCResult{Status: StatusNone},
	}
	if !reflect.DeepEqual(res, want) {
		t.Errorf("Parse(empty) = %+v, want %+v", res, want)
	}
}

func TestParseMalformedHeader(t *testing.T) {
	res := Parse(headersWith([]string{topReceived}, []string{
		"mx.example.com; spf=pass smtp.mailfrom=example.org garbage; dkim=pass header.d=example.org (oops",
	}, nil), Options{})

	if res.SPF.Status != StatusPass || res.DKIM.Status != StatusPass {
		t.Errorf("SPF = %q DKIM = %q, want pass/pass from recovered header", res.SPF.Status, res.DKIM.Status)
	}
	if res.Trust.Lenient != 1 {
		t.Errorf("Trust.Lenient = %d, want 1", res.Trust.Lenient)
	}
}
