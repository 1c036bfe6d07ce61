package table

import (
	"strconv"
	"time"
)

// Type is the declared semantic type of a column
type Type string

const (
	TypeNumeric Type = "numeric"
	TypeText    Type = "text"
	TypeLogical Type = "logical"
	TypeDate    Type = "date"
)

// DateLayout is the canonical display format for date cells
const DateLayout = "2006-01-02"

// Value is a single typed cell. A blank value carries no payload; blanks are
// how grouped tables represent collapsed group columns.
type Value struct {
	typ   Type
	blank bool

	num  float64
	text string
	flag bool
	date time.Time
}

// Num creates a numeric value
func Num(v float64) Value {
	return Value{typ: TypeNumeric, num: v}
}

// Text creates a text value
func Text(s string) Value {
	return Value{typ: TypeText, text: s}
}

// Logical creates a logical value
func Logical(b bool) Value {
	return Value{typ: TypeLogical, flag: b}
}

// Date creates a date value, truncated to UTC day precision
func Date(t time.Time) Value {
	return Value{typ: TypeDate, date: t.UTC().Truncate(24 * time.Hour)}
}

// Blank creates a blank value of the given type
func Blank(typ Type) Value {
	return Value{typ: typ, blank: true}
}

// Type returns the declared type
func (v Value) Type() Type { return v.typ }

// IsBlank checks if the value is blank
func (v Value) IsBlank() bool { return v.blank }

// Float returns the numeric payload and whether the value is a non-blank numeric
func (v Value) Float() (float64, bool) {
	return v.num, v.typ == TypeNumeric && !v.blank
}

// Bool returns the logical payload and whether the value is a non-blank logical
func (v Value) Bool() (bool, bool) {
	return v.flag, v.typ == TypeLogical && !v.blank
}

// Time returns the date payload and whether the value is a non-blank date
func (v Value) Time() (time.Time, bool) {
	return v.date, v.typ == TypeDate && !v.blank
}

// Equal compares two values for exact equality, including blankness
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ || v.blank != other.blank {
		return false
	}
	if v.blank {
		return true
	}
	switch v.typ {
	case TypeNumeric:
		return v.num == other.num
	case TypeText:
		return v.text == other.text
	case TypeLogical:
		return v.flag == other.flag
	case TypeDate:
		return v.date.Equal(other.date)
	}
	return false
}

// String renders the value for display. Blanks render as the empty string.
func (v Value) String() string {
	if v.blank {
		return ""
	}
	switch v.typ {
	case TypeNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case TypeText:
		return v.text
	case TypeLogical:
		return strconv.FormatBool(v.flag)
	case TypeDate:
		return v.date.Format(DateLayout)
	}
	return ""
}

// Native returns the cell payload as the closest Go native type, or nil for blanks
func (v Value) Native() interface{} {
	if v.blank {
		return nil
	}
	switch v.typ {
	case TypeNumeric:
		return v.num
	case TypeText:
		return v.text
	case TypeLogical:
		return v.flag
	case TypeDate:
		return v.date
	}
	return nil
}
