package jdoc

import "fmt"

// FormatError is returned for any malformed input. Msg is one of the fixed
// messages below; Offset is the character offset at which the reader noticed
// the problem.
type FormatError struct {
	Msg    string
	Offset int64
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Is reports whether target is a FormatError carrying the same message, so
// that the exported sentinels can be matched with errors.Is regardless of
// where the failure happened.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Msg == e.Msg
}

var (
	ErrUnexpectedEnd     = &FormatError{Msg: "Unexpected end of the JSON."}
	ErrReadObject        = &FormatError{Msg: "Error reading JSON object."}
	ErrReadArray         = &FormatError{Msg: "Error reading JSON array."}
	ErrInvalidArrayChar  = &FormatError{Msg: "Invalid JSON array character."}
	ErrInvalidObjectChar = &FormatError{Msg: "Invalid JSON object character."}
	ErrInvalidPairName   = &FormatError{Msg: "Invalid character after JSON object pair name."}
	ErrInvalidEscape     = &FormatError{Msg: "Invalid JSON unescaped string character."}
	ErrInvalidNumber     = &FormatError{Msg: "Invalid JSON number format."}
	ErrInvalidBoolean    = &FormatError{Msg: "Invalid Boolean value."}
	ErrInvalidNull       = &FormatError{Msg: "Invalid null value."}
	ErrInvalidFormat     = &FormatError{Msg: "Invalid format"}
	ErrUnexpectedElement = &FormatError{Msg: "Not expected type of element."}
	ErrInvalidChar       = &FormatError{Msg: "Invalid JSON character."}
	ErrMaxDepth          = &FormatError{Msg: "Maximum JSON nesting depth exceeded."}
	ErrTrailingData      = &FormatError{Msg: "Unexpected data after the JSON."}
)
