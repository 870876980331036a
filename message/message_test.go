package message

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const rawMessage = "Received: from relay.example.net (relay.example.net [192.0.2.10])\r\n" +
	"\tby mx.example.com with ESMTPS id abc123\r\n" +
	"\tfor <bob@example.com>; Tue, 14 Jan 2025 10:04:00 +0000\r\n" +
	"Authentication-Results: mx.example.com; spf=pass smtp.mailfrom=example.org\r\n" +
	"Received: from origin.example.org by relay.example.net; Tue, 14 Jan 2025 10:00:05 +0000\r\n" +
	"Received: from [10.0.0.1] by origin.example.org; Tue, 14 Jan 2025 10:00:00 +0000\r\n" +
	"From: =?UTF-8?B?5bGx55SwIOWkqumDjg==?= <taro@example.org>\r\n" +
	"To: Bob <bob@example.com>, carol@example.com\r\n" +
	"Subject: hello\r\n" +
	"\r\n" +
	"body\r\n"

func TestRead(t *testing.T) {
	headers, msg, err := Read(strings.NewReader(rawMessage))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	received := headers.Values("Received")
	if len(received) != 3 {
		t.Fatalf("got %d Received headers, want 3", len(received))
	}
	if !strings.HasPrefix(received[0], "from relay.example.net") {
		t.Errorf("Received[0] = %q, want the topmost header first", received[0])
	}
	if strings.ContainsAny(received[0], "\r\n") {
		t.Errorf("Received[0] = %q, want folded lines joined", received[0])
	}
	if !strings.Contains(received[0], "by mx.example.com") {
		t.Errorf("Received[0] = %q, want continuation text", received[0])
	}
	if !strings.HasPrefix(received[2], "from [10.0.0.1]") {
		t.Errorf("Received[2] = %q, want the oldest header last", received[2])
	}

	for k := range headers {
		if k != strings.ToLower(k) {
			t.Errorf("header key %q is not lower-case", k)
		}
	}

	if msg.Envelope != nil {
		t.Errorf("Envelope = %+v, want nil", msg.Envelope)
	}
	if want := "山田 太郎 <taro@example.org>"; msg.Author != want {
		t.Errorf("Author = %q, want %q", msg.Author, want)
	}
	if want := []string{"Bob <bob@example.com>", "carol@example.com"}; !reflect.DeepEqual(msg.Recipients, want) {
		t.Errorf("Recipients = %v, want %v", msg.Recipients, want)
	}
}

func TestReadEmpty(t *testing.T) {
	_, _, err := Read(strings.NewReader("\r\nbody only\r\n"))
	if !errors.Is(err, ErrEmptyHeader) {
		t.Fatalf("Read() error = %v, want %v", err, ErrEmptyHeader)
	}
}

func TestHeaderMap(t *testing.T) {
	h := NewHeaderMap(map[string][]string{
		"List-Id":  {"<dev.lists.example.org>"},
		"Received": {"first", "second"},
		"X-Blank":  {"  "},
	})

	if got := h.Get("RECEIVED"); got != "first" {
		t.Errorf("Get(RECEIVED) = %q, want %q", got, "first")
	}
	if !h.Has("list-id") {
		t.Error("Has(list-id) = false, want true")
	}
	if h.Has("x-blank") {
		t.Error("Has(x-blank) = true, want false for whitespace-only value")
	}
	if h.Has("list-unsubscribe") {
		t.Error("Has(list-unsubscribe) = true, want false")
	}
	if got := h.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
}

func TestMessageEnvelopeAccessors(t *testing.T) {
	var m Message
	if m.EnvelopeFrom() != "" || m.EnvelopeTo() != nil {
		t.Error("zero Message should report no envelope")
	}

	m.Envelope = &Envelope{From: " bounce@example.org ", To: []string{"bob@example.com"}}
	if got := m.EnvelopeFrom(); got != "bounce@example.org" {
		t.Errorf("EnvelopeFrom() = %q", got)
	}
	if got := m.EnvelopeTo(); !reflect.DeepEqual(got, []string{"bob@example.com"}) {
		t.Errorf("EnvelopeTo() = %v", got)
	}
}
