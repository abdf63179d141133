package cutelog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Format serialises log arguments to compact JSON. A single argument is written
// unwrapped ("hello", not ["hello"]); any other count is written as an array.
// Format never fails.
func Format(args ...any) string {
	if len(args) == 1 {
		return encodePayload(ToLogSafe(args[0]))
	}
	return encodePayload(ToLogSafe(args))
}

// FormatPayload formats the result of a lazy producer. A []any result follows the
// same rule as Format's argument list; anything else is a single argument.
func FormatPayload(v any) string {
	if list, ok := v.([]any); ok {
		return Format(list...)
	}
	return Format(v)
}

func encodePayload(v any) string {
	b, err := marshalCompact(v)
	if err != nil {
		b, _ = marshalCompact(SafeString(fmt.Sprint(v)))
	}
	return string(b)
}

// marshalCompact is json.Marshal without HTML escaping and without the trailing
// newline json.Encoder adds.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
