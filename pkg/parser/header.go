package parser

import "fmt"

// HeaderFields is the undecoded text of each field of one header.
type HeaderFields struct {
	// First and Second are the leading date fields; which one is the day
	// depends on the DateOrder.
	First  string
	Second string
	Year   string
	Hour   string
	Minute string

	// Meridiem is "am", "pm" or "".
	Meridiem string

	// NarrowSpace is true when U+202F precedes the meridiem.
	NarrowSpace bool
}

// ParseHeader splits a complete header into its fields without checking
// field ranges.
func ParseHeader(text string) (HeaderFields, error) {
	h, state, ok := matchHeader(text, 0)
	if !ok {
		return HeaderFields{}, fmt.Errorf("%w: unexpected input at %s", ErrHeaderSyntax, state)
	}
	if h.end != len(text) {
		return HeaderFields{}, fmt.Errorf("%w: trailing text %q", ErrHeaderSyntax, text[h.end:])
	}
	return HeaderFields{
		First:       h.first,
		Second:      h.second,
		Year:        h.year,
		Hour:        h.hour,
		Minute:      h.minute,
		Meridiem:    h.meridiem,
		NarrowSpace: h.narrowSpace,
	}, nil
}
