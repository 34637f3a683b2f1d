package darklaunch

import "time"

// Report describes a detected discrepancy between the two implementations for
// a single call. OldResult and NewResult hold the operation's return value,
// or the captured error for a side that failed. The proxy retains no report
// history; each Report is handed to the callback and discarded.
type Report struct {
	// CallID correlates the report with log lines for the same call.
	CallID string `json:"call_id"`
	Mode   Mode   `json:"mode"`
	Method string `json:"method"`
	Args   []any  `json:"args,omitempty"`

	OldResult any `json:"old_result"`
	NewResult any `json:"new_result"`

	OldDuration time.Duration `json:"old_duration"`
	NewDuration time.Duration `json:"new_duration"`

	// Metadata carries auxiliary detail from a rich equality verdict.
	Metadata map[string]any `json:"metadata,omitempty"`
}
