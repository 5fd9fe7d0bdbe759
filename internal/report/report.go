package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the single result payload of a reconciliation run.
// Exactly one shape is emitted: {"changed":bool} on success, or
// {"failed":true,"msg":"..."} when the run stopped on an error.
type Report struct {
	// Changed reports whether the run performed a write. A pointer so that
	// a successful no-op still serializes an explicit false.
	Changed *bool `json:"changed,omitempty"`
	// Failed marks the payload as a failure envelope.
	Failed bool `json:"failed,omitempty"`
	// Msg carries the failure reason, verbatim.
	Msg string `json:"msg,omitempty"`
}

// Success builds the payload for a completed run.
func Success(changed bool) *Report {
	return &Report{Changed: &changed}
}

// Failure builds the payload for a run that stopped on err.
func Failure(err error) *Report {
	return &Report{Failed: true, Msg: err.Error()}
}

// Emit writes the payload to w as a single newline-terminated JSON object.
func (r *Report) Emit(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
