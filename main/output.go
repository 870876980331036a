package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/synqronlabs/authlens"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/verdict"
)

type writer interface {
	write(source string, r *authlens.Report) error
}

func newWriter(format string, w io.Writer) (writer, error) {
	switch format {
	case "text":
		return textWriter{w}, nil
	case "json":
		return jsonWriter{w}, nil
	case "msgpack":
		return msgpackWriter{w}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// jsonWriter writes one JSON document per line.
type jsonWriter struct{ w io.Writer }

func (j jsonWriter) write(_ string, r *authlens.Report) error {
	data, err := r.ToJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(j.w, "%s\n", data)
	return err
}

// msgpackWriter writes concatenated MessagePack maps.
type msgpackWriter struct{ w io.Writer }

func (m msgpackWriter) write(_ string, r *authlens.Report) error {
	data, err := r.ToMessagePack()
	if err != nil {
		return err
	}
	_, err = m.w.Write(data)
	return err
}

type textWriter struct{ w io.Writer }

func (t textWriter) write(source string, r *authlens.Report) error {
	var b strings.Builder
	v := r.Verdict
	env := r.Envelope

	fmt.Fprintf(&b, "%s: %s (%s)\n", source, strings.ToUpper(string(v.Badge)), v.Reason)
	fmt.Fprintf(&b, "  from:          %s\n", formatFrom(env.HeaderFromName, env.HeaderFromAddress))
	fmt.Fprintf(&b, "  envelope-from: %s\n", env.EnvelopeFrom)
	fmt.Fprintf(&b, "  envelope-to:   %s\n", env.EnvelopeTo)
	fmt.Fprintf(&b, "  alignment:     %s\n", noteText(r))

	auth := r.Auth
	spf := string(auth.SPF.Status)
	if d := auth.SPF.Detail; d.Domain != "" || d.IP != "" {
		spf += " " + strings.TrimSpace(d.Domain+" "+d.IP)
	}
	fmt.Fprintf(&b, "  spf:           %s\n", spf)
	dkim := string(auth.DKIM.Status)
	if len(auth.DKIM.Detail.Domains) > 0 {
		dkim += " " + strings.Join(auth.DKIM.Detail.Domains, ", ")
	}
	fmt.Fprintf(&b, "  dkim:          %s\n", dkim)
	dmarc := string(auth.DMARC.Status)
	if d := auth.DMARC.Detail; d.Domain != "" {
		dmarc += " " + d.Domain
		if d.Policy != "" {
			dmarc += " p=" + string(d.Policy)
		}
	}
	fmt.Fprintf(&b, "  dmarc:         %s\n", dmarc)
	if tr := auth.Trust; tr.Discarded > 0 || tr.FellBack {
		fmt.Fprintf(&b, "  trust:         %d used, %d discarded, fell back: %t\n", tr.Trusted, tr.Discarded, tr.FellBack)
	}

	if len(r.Route) > 0 {
		b.WriteString("  route:\n")
	}
	for i, h := range r.Route {
		marker := ""
		switch h.Delay.Class {
		case route.DelayWarning:
			marker = " !"
		case route.DelayDanger:
			marker = " !!"
		}
		fmt.Fprintf(&b, "    %d. %-8s %s -> %s%s\n", i+1, h.Delay.Label, hostOr(h.From), hostOr(h.By), marker)
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func formatFrom(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

func noteText(r *authlens.Report) string {
	switch r.Note {
	case verdict.NoteOK:
		return "aligned"
	case verdict.NoteMailingList:
		return "mailing list"
	case verdict.NoteMismatch:
		if d := verdict.MismatchDomain(r.Envelope, r.Verdict); d != "" {
			return "authenticated as " + d + ", not the From domain"
		}
		return "sent on behalf of " + r.Envelope.EnvelopeFromDomain
	case verdict.NoteMismatchUnauthenticated:
		return "unauthenticated, sent via " + r.Envelope.EnvelopeFromDomain
	case verdict.NoteAlignedUnauthenticated:
		return "aligned but unauthenticated"
	}
	return "unknown"
}

func hostOr(s string) string {
	if s == "" {
		return "?"
	}
	if i := strings.IndexAny(s, " ("); i > 0 {
		return s[:i]
	}
	return s
}
