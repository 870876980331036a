package authlens

import (
	"encoding/json"
	"fmt"

	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/envelope"
	"github.com/synqronlabs/authlens/route"
	"github.com/synqronlabs/authlens/verdict"
)

// Report is the analysis of one message.
type Report struct {
	// Generation is the token under which the report was committed to a
	// Tracker. Empty for reports returned by Analyze.
	Generation string `json:"generation,omitempty"`

	Envelope envelope.Info   `json:"envelope"`
	Auth     authres.Results `json:"auth"`

	// Route lists the relay hops in chronological order, origin first.
	Route []route.Hop `json:"route"`

	Verdict verdict.Verdict `json:"verdict"`
	Note    verdict.Note    `json:"note"`
}

// ToJSON serializes the Report to JSON bytes.
func (r *Report) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// ToJSONIndent serializes the Report to pretty-printed JSON bytes.
func (r *Report) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON deserializes a Report from JSON bytes.
func FromJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &r, nil
}

// ToMessagePack serializes the Report to MessagePack bytes.
func (r *Report) ToMessagePack() ([]byte, error) {
	return r.MarshalMsg(nil)
}

// FromMessagePack deserializes a Report from MessagePack bytes.
func FromMessagePack(data []byte) (*Report, error) {
	var r Report
	if _, err := r.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &r, nil
}
