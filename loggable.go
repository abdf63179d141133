package cutelog

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Loggable is implemented by types that know their own log representation.
// The LogSafe result is converted like any other value.
type Loggable interface {
	LogSafe() any
}

// maxDepth bounds recursion through nested values; self-referencing maps or
// slices would otherwise never terminate.
const maxDepth = 64

const depthPlaceholder = "<max depth exceeded>"

// Pair is a single key/value entry of a Map.
type Pair struct {
	Key   string
	Value any
}

// Map is an insertion-ordered mapping. It serialises as a JSON object with its
// keys in order.
type Map []Pair

// M builds a Map from alternating keys and values. Keys are stringified.
func M(kv ...any) Map {
	m := make(Map, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		m = append(m, Pair{Key: fmt.Sprint(kv[i]), Value: v})
	}
	return m
}

func (m Map) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, p := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := marshalCompact(p.Key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		v, err := marshalCompact(p.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// ErrorValue is the log-safe shape of an error.
type ErrorValue struct {
	Class     string   `json:"class"`
	Message   string   `json:"message"`
	Backtrace []string `json:"backtrace"`
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// NewErrorValue captures the dynamic type, message and, when the error (or any
// error it wraps) was created by github.com/pkg/errors, its stack trace.
func NewErrorValue(err error) ErrorValue {
	ev := ErrorValue{
		Class:   SafeString(reflect.TypeOf(err).String()),
		Message: SafeString(fmt.Sprint(err)),
	}
	var st stackTracer
	if errors.As(err, &st) {
		frames := st.StackTrace()
		if len(frames) > 0 {
			ev.Backtrace = make([]string, 0, len(frames))
			for _, f := range frames {
				ev.Backtrace = append(ev.Backtrace, SafeString(fmt.Sprintf("%s:%d:in %n", f, f, f)))
			}
		}
	}
	return ev
}

// ToLogSafe converts v into a value that serialises to valid UTF-8 JSON.
// It never fails and never panics on odd input.
func ToLogSafe(v any) any {
	return toLogSafe(v, 0)
}

func toLogSafe(v any, depth int) any {
	if depth > maxDepth {
		return depthPlaceholder
	}
	switch x := v.(type) {
	case nil:
		return nil
	case Loggable:
		if isNilValue(v) {
			return nil
		}
		return toLogSafe(x.LogSafe(), depth+1)
	case ErrorValue:
		return x
	case error:
		if isNilValue(v) {
			return nil
		}
		return NewErrorValue(x)
	case string:
		return SafeString(x)
	case []byte:
		if x == nil {
			return nil
		}
		return ToSafeUTF8(x)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return x
	case float32:
		return safeFloat(float64(x), 32)
	case float64:
		return safeFloat(x, 64)
	case json.Number:
		return SafeString(x.String())
	case Map:
		out := make(Map, len(x))
		for i, p := range x {
			out[i] = Pair{Key: SafeString(p.Key), Value: toLogSafe(p.Value, depth+1)}
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toLogSafe(e, depth+1)
		}
		return out
	case map[string]any:
		if x == nil {
			return nil
		}
		return mapToLogSafe(reflect.ValueOf(x), depth)
	case fmt.Stringer:
		if isNilValue(v) {
			return nil
		}
		return SafeString(fmt.Sprint(x))
	}
	return reflectToLogSafe(reflect.ValueOf(v), depth)
}

func reflectToLogSafe(rv reflect.Value, depth int) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return toLogSafe(rv.Elem().Interface(), depth+1)
	case reflect.String:
		return SafeString(rv.String())
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return safeFloat(rv.Float(), rv.Type().Bits())
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ToSafeUTF8(rv.Bytes())
		}
		return seqToLogSafe(rv, depth)
	case reflect.Array:
		return seqToLogSafe(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		return mapToLogSafe(rv, depth)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return nil
		}
	}
	return SafeString(fmt.Sprint(rv.Interface()))
}

func seqToLogSafe(rv reflect.Value, depth int) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = toLogSafe(rv.Index(i).Interface(), depth+1)
	}
	return out
}

// mapToLogSafe converts a Go map into a Map sorted by key, since Go maps carry no
// insertion order.
func mapToLogSafe(rv reflect.Value, depth int) Map {
	out := make(Map, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, Pair{
			Key:   keyString(toLogSafe(iter.Key().Interface(), depth+1)),
			Value: toLogSafe(iter.Value().Interface(), depth+1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// keyString renders an already log-safe key as a JSON object key.
func keyString(k any) string {
	switch x := k.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return SafeString(fmt.Sprint(k))
}

// safeFloat keeps finite floats as numbers; JSON has no NaN or Inf.
func safeFloat(f float64, bits int) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	if bits == 32 {
		return float32(f)
	}
	return f
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
