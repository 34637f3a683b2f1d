package darklaunch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Verdict is the outcome of an equality check. Metadata is optional auxiliary
// detail attached to the discrepancy report when the values are unequal.
type Verdict struct {
	Equal    bool
	Metadata map[string]any
}

// EqualFunc decides whether the old and new results of one call match. Either
// value may be an error when the corresponding execution failed. The original
// call arguments are passed as context. A returned error is logged and
// suppresses the report for that call; it never affects the caller's response.
type EqualFunc func(oldVal, newVal any, args []any) (Verdict, error)

// JSONEquality is the default equality function. It compares the JSON
// serializations of the two values; error values compare by their Error
// string.
func JSONEquality(oldVal, newVal any, _ []any) (Verdict, error) {
	a, err := marshalComparable(oldVal)
	if err != nil {
		return Verdict{}, fmt.Errorf("darklaunch: marshal old value: %w", err)
	}
	b, err := marshalComparable(newVal)
	if err != nil {
		return Verdict{}, fmt.Errorf("darklaunch: marshal new value: %w", err)
	}
	return Verdict{Equal: bytes.Equal(a, b)}, nil
}

func marshalComparable(v any) ([]byte, error) {
	if err, ok := v.(error); ok {
		return json.Marshal(err.Error())
	}
	return json.Marshal(v)
}
