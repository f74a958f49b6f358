package command

import "fmt"

// ValueType declares how the value text of an option is interpreted.
type ValueType int

// Supported option value types.
const (
	ValueTypeString ValueType = iota
	ValueTypeInteger
	ValueTypeFloat
	ValueTypeMultiString
)

// String returns the lowercase name of the value type as used in catalogs.
func (t ValueType) String() string {
	switch t {
	case ValueTypeString:
		return "string"
	case ValueTypeInteger:
		return "integer"
	case ValueTypeFloat:
		return "float"
	case ValueTypeMultiString:
		return "multistring"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// ParseValueType converts a catalog type name into a ValueType.
//
// Postcondition: Returns the ValueType for "string", "integer", "float", or
// "multistring", or an error for any other name.
func ParseValueType(name string) (ValueType, error) {
	switch name {
	case "string":
		return ValueTypeString, nil
	case "integer":
		return ValueTypeInteger, nil
	case "float":
		return ValueTypeFloat, nil
	case "multistring":
		return ValueTypeMultiString, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", name)
	}
}

// Value is the typed result of one option occurrence. The type tag is fixed
// by the constructor that produced the Value and always matches the ValueType
// declared for the option in its Definition.
type Value struct {
	typ     ValueType
	str     string
	integer int64
	float   float64
	multi   []string
}

// StringValue creates a Value holding verbatim option text.
func StringValue(s string) Value {
	return Value{typ: ValueTypeString, str: s}
}

// IntegerValue creates a Value holding a parsed 64-bit signed integer.
func IntegerValue(n int64) Value {
	return Value{typ: ValueTypeInteger, integer: n}
}

// FloatValue creates a Value holding a parsed 64-bit float.
func FloatValue(f float64) Value {
	return Value{typ: ValueTypeFloat, float: f}
}

// MultiStringValue creates a Value holding a list of option texts.
func MultiStringValue(items ...string) Value {
	return Value{typ: ValueTypeMultiString, multi: append([]string(nil), items...)}
}

// Type returns the value's type tag.
func (v Value) Type() ValueType { return v.typ }

// AsString returns the held string and whether the value is a String.
func (v Value) AsString() (string, bool) {
	return v.str, v.typ == ValueTypeString
}

// AsInteger returns the held integer and whether the value is an Integer.
func (v Value) AsInteger() (int64, bool) {
	return v.integer, v.typ == ValueTypeInteger
}

// AsFloat returns the held float and whether the value is a Float.
func (v Value) AsFloat() (float64, bool) {
	return v.float, v.typ == ValueTypeFloat
}

// AsMultiString returns the held list and whether the value is a MultiString.
func (v Value) AsMultiString() ([]string, bool) {
	return v.multi, v.typ == ValueTypeMultiString
}

// appendString returns a MultiString value extended by one more item.
// The receiver is not modified.
func (v Value) appendString(item string) Value {
	items := make([]string, 0, len(v.multi)+1)
	items = append(items, v.multi...)
	items = append(items, item)
	return Value{typ: ValueTypeMultiString, multi: items}
}
