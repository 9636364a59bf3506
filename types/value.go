package types

// UnknownText is the placeholder written for values that could not be determined
const UnknownText = "Unknown"

// Value is a string field that is either known or unknown.
// The zero value is unknown.
type Value struct {
	text  string
	known bool
}

// Known wraps a determined value
func Known(text string) Value {
	return Value{text: text, known: true}
}

// Unknown returns the unknown value
func Unknown() Value {
	return Value{}
}

// KnownIf returns Known(text) when ok, otherwise Unknown
func KnownIf(text string, ok bool) Value {
	if !ok {
		return Unknown()
	}
	return Known(text)
}

// IsKnown reports whether the value was determined
func (v Value) IsKnown() bool {
	return v.known
}

// Get returns the raw value and whether it is known
func (v Value) Get() (string, bool) {
	return v.text, v.known
}

// Or returns the value when known, otherwise the fallback
func (v Value) Or(fallback Value) Value {
	if v.known {
		return v
	}
	return fallback
}

// String renders the value for output; unknown values render as "Unknown"
func (v Value) String() string {
	if !v.known {
		return UnknownText
	}
	return v.text
}
