package darklaunch

import "context"

// Mode is the dispatch policy resolved from the flag provider for one call.
type Mode string

const (
	// ModeOld routes the call to the old implementation only.
	ModeOld Mode = "old"
	// ModeNew routes the call to the new implementation, falling back to the
	// old one for operations the new implementation does not define.
	ModeNew Mode = "new"
	// ModeOldCompare runs both implementations and returns the old result.
	ModeOldCompare Mode = "old-compare"
	// ModeNewCompare runs both implementations and returns the new result.
	ModeNewCompare Mode = "new-compare"
)

// FlagProvider supplies the mode string for one call. It is invoked once per
// intercepted call and never cached, so consecutive calls may land on
// different modes. If it returns an error, the call fails with that error.
type FlagProvider func(ctx context.Context) (string, error)

// ParseMode validates a flag value against the known mode set.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeOld, ModeNew, ModeOldCompare, ModeNewCompare:
		return Mode(s), true
	}
	return "", false
}

func (m Mode) compares() bool {
	return m == ModeOldCompare || m == ModeNewCompare
}
