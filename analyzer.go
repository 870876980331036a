package authlens

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/envelope"
	"github.com/synqronlabs/authlens/message"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/verdict"
)

// Analyzer runs the analysis pipeline. It holds no per-message state and is
// safe for concurrent use.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an Analyzer, filling in defaults for unset fields.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config.withDefaults()}
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze produces the report of one message.
//
// headers is the header map of the message, msg the optional envelope and
// author record, and decodedAuthor the From header as decoded by the caller,
// or "". Analyze never fails: missing data yields defaulted fields. The
// result depends only on the arguments and the configuration, and the
// returned Report has no Generation.
func (a *Analyzer) Analyze(headers message.HeaderMap, msg message.Message, decodedAuthor string) *Report {
	if headers == nil {
		headers = message.HeaderMap{}
	}

	env := envelope.Resolve(msg, headers, decodedAuthor, a.config.Suffixes)
	auth := authres.Parse(headers, authres.Options{
		Policy: a.config.Trust,
		Logger: a.config.Logger,
	})
	hops := route.Reconstruct(headers, a.config.Delays)
	v := verdict.Classify(auth, env.IsDomainAligned, env.EnvelopeFrom)

	if auth.Trust.Lenient > 0 {
		a.config.Logger.Warn("malformed authentication results recovered",
			slog.Int("count", auth.Trust.Lenient),
			slog.String("last_received_by", auth.Trust.LastReceivedBy),
		)
	}
	a.config.Logger.Debug("message analyzed",
		slog.String("header_from_domain", env.HeaderFromDomain),
		slog.String("envelope_from_domain", env.EnvelopeFromDomain),
		slog.Bool("aligned", env.IsDomainAligned),
		slog.String("badge", string(v.Badge)),
		slog.String("reason", string(v.Reason)),
		slog.Int("hops", len(hops)),
	)

	return &Report{
		Envelope: env,
		Auth:     auth,
		Route:    hops,
		Verdict:  v,
		Note:     verdict.AlignmentNote(env, v),
	}
}

// AnalyzeReader reads a message header block (and ignores the body) from r
// and analyzes it. The From header is decoded from MIME encoded-words and
// used as the decoded author.
func (a *Analyzer) AnalyzeReader(r io.Reader) (*Report, error) {
	headers, msg, err := message.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return a.Analyze(headers, msg, msg.Author), nil
}
