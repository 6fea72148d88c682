package parser

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrHeaderSyntax is returned when text is not exactly one date-time header.
	ErrHeaderSyntax = errors.New("not a date-time header")

	// ErrFieldRange is returned when a header field is outside its calendar range.
	ErrFieldRange = errors.New("header field out of range")
)

// yearPivot splits two-digit years: below it is 20xx, at or above it is 19xx.
const yearPivot = 69

// Resolver turns header text into a time value.
type Resolver struct {
	order DateOrder
	loc   *time.Location
}

// NewResolver creates a resolver for the given date order. A nil location
// means UTC; an invalid order means DayFirst.
func NewResolver(order DateOrder, loc *time.Location) *Resolver {
	if !order.Valid() {
		order = DayFirst
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{order: order, loc: loc}
}

// Order returns the date order used by the resolver.
func (r *Resolver) Order() DateOrder {
	return r.order
}

// Parse parses a complete header such as "1/1/24, 10:00 - " or
// "31/12/23, 11:59 pm - ".
func (r *Resolver) Parse(text string) (time.Time, error) {
	f, err := ParseHeader(text)
	if err != nil {
		return time.Time{}, err
	}
	return r.FromFields(f)
}

// Resolve is Parse with failures mapped to nil.
func (r *Resolver) Resolve(text string) *time.Time {
	ts, _ := r.resolve(text)
	return ts
}

// resolve returns the instant of a header and its date and time as
// written, in UTC. Both are nil when the header does not resolve.
func (r *Resolver) resolve(text string) (ts, wall *time.Time) {
	f, err := ParseHeader(text)
	if err != nil {
		return nil, nil
	}
	w, err := r.WallClock(f)
	if err != nil {
		return nil, nil
	}
	t := r.at(w)
	return &t, &w
}

// FromFields validates decoded header fields and builds the time value in
// the resolver's location. A wall time skipped by a daylight saving change
// is normalized by time.Date, so its hour can differ from the written one;
// WallClock keeps the written fields.
func (r *Resolver) FromFields(h HeaderFields) (time.Time, error) {
	w, err := r.WallClock(h)
	if err != nil {
		return time.Time{}, err
	}
	return r.at(w), nil
}

func (r *Resolver) at(wall time.Time) time.Time {
	return time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), 0, 0, r.loc)
}

// WallClock validates decoded header fields and returns the date and time
// exactly as written, in UTC.
func (r *Resolver) WallClock(h HeaderFields) (time.Time, error) {
	dayText, monthText := h.First, h.Second
	if r.order == MonthFirst {
		dayText, monthText = h.Second, h.First
	}

	year, err := expandYear(h.Year)
	if err != nil {
		return time.Time{}, err
	}
	month := atoi(monthText)
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %s", ErrFieldRange, monthText)
	}
	day := atoi(dayText)
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("%w: day %s of %d-%02d", ErrFieldRange, dayText, year, month)
	}
	hour, err := clockHour(h.Hour, h.Meridiem)
	if err != nil {
		return time.Time{}, err
	}
	minute := atoi(h.Minute)
	if minute > 59 {
		return time.Time{}, fmt.Errorf("%w: minute %s", ErrFieldRange, h.Minute)
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// expandYear maps a 2- or 4-digit year to a full year. Two-digit years
// 00..68 are 2000..2068 and 69..99 are 1969..1999.
func expandYear(text string) (int, error) {
	y := atoi(text)
	switch len(text) {
	case 2:
		if y < yearPivot {
			return 2000 + y, nil
		}
		return 1900 + y, nil
	case 4:
		return y, nil
	default:
		return 0, fmt.Errorf("%w: year %q must have 2 or 4 digits", ErrFieldRange, text)
	}
}

// clockHour converts a written hour to 0..23. With a meridiem the written
// hour must be 1..12; without one it must be 0..23.
func clockHour(text, meridiem string) (int, error) {
	h := atoi(text)
	switch meridiem {
	case "":
		if h > 23 {
			return 0, fmt.Errorf("%w: hour %s", ErrFieldRange, text)
		}
		return h, nil
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("%w: hour %s %s", ErrFieldRange, text, meridiem)
		}
		h %= 12
		if meridiem == "pm" {
			h += 12
		}
		return h, nil
	default:
		return 0, fmt.Errorf("%w: meridiem %q", ErrHeaderSyntax, meridiem)
	}
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// atoi parses a digit run already validated by the scanner.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
