package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	gomessage "github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
	"golang.org/x/text/unicode/norm"

	"github.com/synqronlabs/authlens/utils"
)

var (
	// ErrMalformedHeader indicates the header section could not be read.
	ErrMalformedHeader = errors.New("message: malformed header section")

	// ErrEmptyHeader indicates the input contained no header fields.
	ErrEmptyHeader = errors.New("message: no header fields")
)

// Read parses the header section of a raw RFC 5322 message. It returns the
// header map, a message record populated from the headers (the envelope is
// left nil, raw messages carry none) and the decoded author string, with
// MIME encoded-words in the display name decoded and NFC-normalized.
//
// The body, if any, is not read.
func Read(r io.Reader) (HeaderMap, Message, error) {
	th, err := textproto.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return nil, Message{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	headers := HeaderMap{}
	fields := th.Fields()
	for fields.Next() {
		key := strings.ToLower(fields.Key())
		headers[key] = append(headers[key], unfold(fields.Value()))
	}
	if len(headers) == 0 {
		return nil, Message{}, ErrEmptyHeader
	}

	mh := mail.Header{Header: gomessage.Header{Header: th}}
	msg := Message{
		Author:     decodeAuthor(&mh),
		Recipients: decodeAddresses(&mh, "To"),
	}
	return headers, msg, nil
}

// unfold removes the CRLF of folded header lines, keeping the whitespace that
// follows it per RFC 5322 Section 2.2.3.
func unfold(v string) string {
	if !strings.ContainsAny(v, "\r\n") {
		return v
	}
	v = strings.ReplaceAll(v, "\r\n", "")
	return strings.ReplaceAll(v, "\n", "")
}

// decodeAuthor returns the first From address formatted as "Name <addr>",
// or the bare address when there is no display name. When the From header
// cannot be parsed as an address list the encoded-word decoded text is used.
func decodeAuthor(h *mail.Header) string {
	addrs, err := h.AddressList("From")
	if err == nil && len(addrs) > 0 {
		return formatAddress(addrs[0].Name, addrs[0].Address)
	}

	text, err := h.Text("From")
	if err != nil {
		return ""
	}
	return normalizeName(strings.TrimSpace(unfold(text)))
}

func decodeAddresses(h *mail.Header, key string) []string {
	addrs, err := h.AddressList(key)
	if err != nil {
		return nil
	}
	l := make([]string, 0, len(addrs))
	for _, a := range addrs {
		l = append(l, formatAddress(a.Name, a.Address))
	}
	return l
}

func formatAddress(name, addr string) string {
	name = normalizeName(strings.TrimSpace(name))
	if name == "" {
		return addr
	}
	return name + " <" + addr + ">"
}

func normalizeName(s string) string {
	if utils.ContainsNonASCII(s) {
		return norm.NFC.String(s)
	}
	return s
}
