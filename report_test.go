package authlens

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tinylib/msgp/msgp"

	"github.com/synqronlabs/authlens/route"
)

func newsletterReport(t *testing.T) *Report {
	t.Helper()
	r, err := NewAnalyzer(Config{Logger: discardLogger()}).AnalyzeReader(strings.NewReader(newsletter))
	if err != nil {
		t.Fatalf("AnalyzeReader() error = %v", err)
	}
	return r
}

func TestReportMessagePack(t *testing.T) {
	r := newsletterReport(t)
	r.Generation = "01JHF2Q7Z9Y8X7W6V5T4S3R2Q1"

	data, err := r.ToMessagePack()
	if err != nil {
		t.Fatalf("ToMessagePack() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ToMessagePack() returned empty data")
	}

	decoded, err := FromMessagePack(data)
	if err != nil {
		t.Fatalf("FromMessagePack() error = %v", err)
	}

	// Time zones are not preserved, only instants.
	if len(decoded.Route) != len(r.Route) {
		t.Fatalf("decoded %d hops, want %d", len(decoded.Route), len(r.Route))
	}
	for i := range r.Route {
		if !decoded.Route[i].Date.Equal(r.Route[i].Date) {
			t.Errorf("hop %d date = %v, want %v", i, decoded.Route[i].Date, r.Route[i].Date)
		}
		decoded.Route[i].Date = time.Time{}
		r.Route[i].Date = time.Time{}
	}

	if !reflect.DeepEqual(decoded, r) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, r)
	}

	jsonData, _ := r.ToJSON()
	t.Logf("MessagePack size: %d bytes, JSON size: %d bytes", len(data), len(jsonData))
}

func TestReportMessagePackZeroDate(t *testing.T) {
	hop := newsletterReport(t).Route[0]
	hop.Date = time.Time{}
	r := &Report{Route: []route.Hop{hop}}

	data, err := r.ToMessagePack()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := FromMessagePack(data)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Route[0].Date.IsZero() {
		t.Errorf("Date = %v, want zero", decoded.Route[0].Date)
	}
}

func TestReportMessagePackSkipsUnknownKeys(t *testing.T) {
	b := msgp.AppendMapHeader(nil, 3)
	b = msgp.AppendString(b, "note")
	b = msgp.AppendString(b, "mailing-list")
	b = msgp.AppendString(b, "added_later")
	b = msgp.AppendMapHeader(b, 1)
	b = msgp.AppendString(b, "x")
	b = msgp.AppendArrayHeader(b, 2)
	b = msgp.AppendInt64(b, 1)
	b = msgp.AppendInt64(b, 2)
	b = msgp.AppendString(b, "generation")
	b = msgp.AppendString(b, "01JHF2Q7Z9Y8X7W6V5T4S3R2Q1")

	r, err := FromMessagePack(b)
	if err != nil {
		t.Fatalf("FromMessagePack() error = %v", err)
	}
	if r.Note != "mailing-list" || r.Generation != "01JHF2Q7Z9Y8X7W6V5T4S3R2Q1" {
		t.Errorf("decoded %+v", r)
	}
}

func TestReportDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a map", msgp.AppendString(nil, "report")},
		{"wrong field type", msgp.AppendInt64(msgp.AppendString(msgp.AppendMapHeader(nil, 1), "note"), 7)},
		{"truncated", msgp.AppendMapHeader(nil, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromMessagePack(tt.data); !errors.Is(err, ErrDecode) {
				t.Errorf("FromMessagePack() error = %v, want %v", err, ErrDecode)
			}
		})
	}

	if _, err := FromJSON([]byte("{")); !errors.Is(err, ErrDecode) {
		t.Errorf("FromJSON() error = %v, want %v", err, ErrDecode)
	}
}

func TestReportJSON(t *testing.T) {
	r := newsletterReport(t)
	data, err := r.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	for _, want := range []string{
		`"badge":"secure"`,
		`"note":"ok"`,
		`"last_received_by":"mx.example.com"`,
		`"label":"+3m55s"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s", want)
		}
	}
	if strings.Contains(string(data), `"generation"`) {
		t.Error("JSON has a generation for an uncommitted report")
	}

	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if decoded.Verdict != r.Verdict || decoded.Envelope != r.Envelope {
		t.Errorf("FromJSON() = %+v", decoded)
	}
}
