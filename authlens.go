// Authlens tells whether an email really comes from who it claims to.
//
// It reads the trace and authentication headers a receiving mail server
// adds (Received, Authentication-Results, ARC-Authentication-Results) and
// reports which of SPF, DKIM and DMARC passed, whether the From domain
// belongs to the same organization as the envelope sender, and the path the
// message took through relays. No DNS lookups are made: the results asserted
// by the delivering relay are trusted, and only those.
//
// # Analysis
//
// Analyze a raw message:
//
//	analyzer := authlens.NewAnalyzer(authlens.Config{Logger: logger})
//
//	report, err := analyzer.AnalyzeReader(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Verdict.Badge) // secure, warning or danger
//
// Or a header map obtained from a mail client, with the author as decoded
// by the client:
//
//	headers := message.NewHeaderMap(clientHeaders)
//	report := analyzer.Analyze(headers, message.Message{
//	    Envelope: &message.Envelope{From: "bounce@esp.example.net"},
//	}, decodedAuthor)
//
// # Trust
//
// Authentication-Results headers are only used when their authserv-id names
// the host in the "by" clause of the topmost Received header, or a parent or
// child domain of it. When none does, Config.Trust decides: the default
// authres.TrustFallbackAll uses all of them, authres.TrustStrict none.
//
// # Alignment
//
// The From and envelope sender domains are compared by organizational domain
// (RFC 7489 Section 3.2), using a curated public suffix table by default or
// the full ICANN list with suffix.ICANN:
//
//	analyzer := authlens.NewAnalyzer(authlens.StrictConfig())
//
// # Serialization
//
// JSON Serialization:
//
//	jsonData, err := report.ToJSON()
//
// MessagePack Serialization:
//
//	msgpackData, err := report.ToMessagePack()
//
//	report, err := authlens.FromMessagePack(msgpackData)
//
// # Stale results
//
// Callers that analyze the message currently on display can discard results
// that arrive after the user moved on:
//
//	gen := tracker.Begin()
//	report := analyzer.Analyze(headers, msg, author)
//	if err := tracker.Commit(gen, report); errors.Is(err, authlens.ErrStaleGeneration) {
//	    return // another message was selected meanwhile
//	}
package authlens
