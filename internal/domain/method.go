package domain

import "strings"

// Method selects the shape of a brew schedule.
type Method int

const (
	MethodUnknown Method = iota
	MethodFourSix
	MethodHoffmann1Cup
)

// Methods lists the supported methods in display order.
var Methods = []Method{MethodFourSix, MethodHoffmann1Cup}

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodFourSix:
		return "4:6"
	case MethodHoffmann1Cup:
		return "hoffmann-1cup"
	default:
		return "unknown"
	}
}

// Next returns the method after m in display order, wrapping around.
func (m Method) Next() Method {
	for i, cand := range Methods {
		if cand == m {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return Methods[0]
}

// methodNames maps accepted spellings to methods.
var methodNames = map[string]Method{
	"4:6":           MethodFourSix,
	"46":            MethodFourSix,
	"four-six":      MethodFourSix,
	"foursix":       MethodFourSix,
	"kasuya":        MethodFourSix,
	"hoffmann-1cup": MethodHoffmann1Cup,
	"hoffmann":      MethodHoffmann1Cup,
	"1cup":          MethodHoffmann1Cup,
	"1-cup":         MethodHoffmann1Cup,
}

// ParseMethod converts a method name to a Method.
// Returns MethodUnknown and ErrUnknownMethod for unrecognized names.
func ParseMethod(name string) (Method, error) {
	if m, ok := methodNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return MethodUnknown, ErrUnknownMethod
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
