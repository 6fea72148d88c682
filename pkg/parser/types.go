// Package parser turns the text of a chat export into chat records.
//
// Parsing is split into three independent steps: the segmenter cuts the text
// at every date-time header, the resolver turns a header into a time, and
// the decomposer separates the author prefix from the message body.
package parser

// Segment is one header and the text that follows it up to the next header.
type Segment struct {
	// Header is the raw date-time header including the trailing " - " separator.
	Header string

	// Body is everything after the header up to, not including, the next header.
	Body string

	// Offset is the byte offset of Header in the source text.
	Offset int
}

// DateOrder is the order of the day and month fields in a header.
type DateOrder string

const (
	// DayFirst reads "D/M/Y" headers. This is the default.
	DayFirst DateOrder = "dmy"

	// MonthFirst reads "M/D/Y" headers.
	MonthFirst DateOrder = "mdy"
)

// Valid reports whether o is a known date order.
func (o DateOrder) Valid() bool {
	return o == DayFirst || o == MonthFirst
}

// header is the decoded form of one matched date-time header.
type header struct {
	// start and end are byte offsets of the header in the scanned text.
	start, end int

	// first and second are the two leading date fields as written.
	// Which one is the day depends on the DateOrder.
	first, second string
	year          string
	hour, minute  string

	// meridiem is "am", "pm" or "" (lower-cased).
	meridiem string

	// narrowSpace is true when the meridiem is preceded by U+202F.
	narrowSpace bool
}
