package envelope

import (
	"testing"

	"github.com/synqronlabs/authlens/message"
	"github.com/synqronlabs/authlens/suffix"
	"github.com/synqronlabs/authlens/utils"
)

func TestResolveEnvelopeFrom(t *testing.T) {
	tests := []struct {
		name    string
		msg     message.Message
		headers message.HeaderMap
		want    string
	}{
		{
			name:    "envelope metadata wins",
			msg:     message.Message{Envelope: &message.Envelope{From: "<bounce@esp.example.net>"}, Author: "a@example.org"},
			headers: message.HeaderMap{"return-path": {"<rp@example.org>"}},
			want:    "bounce@esp.example.net",
		},
		{
			name:    "return-path",
			msg:     message.Message{Author: "a@example.org"},
			headers: message.HeaderMap{"return-path": {" <rp@example.org> ", "<older@example.org>"}},
			want:    "rp@example.org",
		},
		{
			name:    "null reverse-path falls through to author",
			msg:     message.Message{Author: `"Alice" <alice@example.org>`},
			headers: message.HeaderMap{"return-path": {"<>"}},
			want:    "alice@example.org",
		},
		{
			name: "nothing known",
			want: utils.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.msg, tt.headers, "", nil)
			if got.EnvelopeFrom != tt.want {
				t.Errorf("EnvelopeFrom = %q, want %q", got.EnvelopeFrom, tt.want)
			}
		})
	}
}

func TestResolveEnvelopeTo(t *testing.T) {
	tests := []struct {
		name    string
		msg     message.Message
		headers message.HeaderMap
		want    string
	}{
		{
			name:    "delivered-to joined",
			msg:     message.Message{Envelope: &message.Envelope{To: []string{"x@example.com"}}},
			headers: message.HeaderMap{"delivered-to": {"bob@example.com", "alias@example.com"}},
			want:    "bob@example.com, alias@example.com",
		},
		{
			name: "envelope recipients",
			msg:  message.Message{Envelope: &message.Envelope{To: []string{"x@example.com", "y@example.com"}}, Recipients: []string{"z@example.com"}},
			want: "x@example.com, y@example.com",
		},
		{
			name: "recipient list",
			msg:  message.Message{Recipients: []string{"Bob <bob@example.com>"}},
			want: "Bob <bob@example.com>",
		},
		{
			name: "unknown",
			want: utils.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.msg, tt.headers, "", nil)
			if got.EnvelopeTo != tt.want {
				t.Errorf("EnvelopeTo = %q, want %q", got.EnvelopeTo, tt.want)
			}
		})
	}
}

func TestResolveHeaderFrom(t *testing.T) {
	tests := []struct {
		name          string
		decoded       string
		header        string
		wantName      string
		wantAddress   string
		wantDomain    string
		wantOrgDomain string
	}{
		{
			name:          "decoded author preferred",
			decoded:       "山田 太郎 <Taro@Mail.Example.CO.JP>",
			header:        "=?UTF-8?B?5bGx55SwIOWkqumDjg==?= <taro@mail.example.co.jp>",
			wantName:      "山田 太郎",
			wantAddress:   "Taro@Mail.Example.CO.JP",
			wantDomain:    "mail.example.co.jp",
			wantOrgDomain: "example.co.jp",
		},
		{
			name:          "quoted display name",
			header:        `"Example, Inc." <news@news.example.com>`,
			wantName:      "Example, Inc.",
			wantAddress:   "news@news.example.com",
			wantDomain:    "news.example.com",
			wantOrgDomain: "example.com",
		},
		{
			name:          "bare address with stray brackets",
			header:        "<solo@example.org",
			wantAddress:   "solo@example.org",
			wantDomain:    "example.org",
			wantOrgDomain: "example.org",
		},
		{
			name:        "missing",
			wantAddress: utils.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := message.HeaderMap{}
			if tt.header != "" {
				h["from"] = []string{tt.header}
			}
			got := Resolve(message.Message{}, h, tt.decoded, nil)
			if got.HeaderFromName != tt.wantName {
				t.Errorf("HeaderFromName = %q, want %q", got.HeaderFromName, tt.wantName)
			}
			if got.HeaderFromAddress != tt.wantAddress {
				t.Errorf("HeaderFromAddress = %q, want %q", got.HeaderFromAddress, tt.wantAddress)
			}
			if got.HeaderFromDomain != tt.wantDomain {
				t.Errorf("HeaderFromDomain = %q, want %q", got.HeaderFromDomain, tt.wantDomain)
			}
			if got.HeaderOrgDomain != tt.wantOrgDomain {
				t.Errorf("HeaderOrgDomain = %q, want %q", got.HeaderOrgDomain, tt.wantOrgDomain)
			}
		})
	}
}

func TestResolveAlignment(t *testing.T) {
	tests := []struct {
		name         string
		envelopeFrom string
		author       string
		list         suffix.List
		want         bool
	}{
		{"same organization", "bounce@aaa.bbb.google.com", "noreply@ccc.google.com", nil, true},
		{"sibling under multi-label suffix", "x@a.evil.co.jp", "y@b.legit.co.jp", nil, false},
		{"same org under multi-label suffix", "x@a.example.co.jp", "y@example.co.jp", nil, true},
		{"hosted suffix separates tenants", "x@alice.github.io", "y@bob.github.io", nil, false},
		{"different domains", "bounce@esp.example.net", "news@example.com", nil, false},
		{"case-insensitive", "x@MAIL.Example.COM", "y@example.com", nil, true},
		{"icann list", "x@a.example.com.au", "y@b.example.com.au", suffix.ICANN, true},
		{"unknown never aligns", "", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg message.Message
			if tt.envelopeFrom != "" {
				msg.Envelope = &message.Envelope{From: tt.envelopeFrom}
			}
			got := Resolve(msg, message.HeaderMap{}, tt.author, tt.list)
			if got.IsDomainAligned != tt.want {
				t.Errorf("IsDomainAligned = %v, want %v (orgs %q / %q)",
					got.IsDomainAligned, tt.want, got.HeaderOrgDomain, got.EnvelopeOrgDomain)
			}
		})
	}
}

func TestResolveMailingList(t *testing.T) {
	tests := []struct {
		name    string
		headers message.HeaderMap
		want    bool
	}{
		{"list-id", message.HeaderMap{"list-id": {"<dev.lists.example.org>"}}, true},
		{"list-unsubscribe", message.HeaderMap{"list-unsubscribe": {"<mailto:leave@example.org>"}}, true},
		{"empty list-id", message.HeaderMap{"list-id": {""}}, false},
		{"none", message.HeaderMap{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(message.Message{}, tt.headers, "", nil).IsMailingList; got != tt.want {
				t.Errorf("IsMailingList = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		in, name, addr string
	}{
		{"Alice <alice@example.org>", "Alice", "alice@example.org"},
		{`"Bob \"B\"" <bob@example.org>`, `Bob \B\`, "bob@example.org"},
		{"<carol@example.org>", "", "carol@example.org"},
		{"dave@example.org", "", "dave@example.org"},
		{"broken <>", "", "broken <"},
	}
	for _, tt := range tests {
		name, addr := SplitAddress(tt.in)
		if name != tt.name || addr != tt.addr {
			t.Errorf("SplitAddress(%q) = %q, %q, want %q, %q", tt.in, name, addr, tt.name, tt.addr)
		}
	}
}
