package parser

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// headerState is a position in the header grammar
//
//	D{1,2} "/" M{1,2} "/" Y{2,4} "," WS H{1,2} ":" MM [WS] [am|pm] WS "-" WS
//
// Each state consumes exactly one grammar element.
type headerState int

const (
	stateFirst headerState = iota
	stateFirstSlash
	stateSecond
	stateSecondSlash
	stateYear
	stateComma
	stateClockSpace
	stateHour
	stateColon
	stateMinute
	stateSuffix
	stateAccept
)

var stateNames = [...]string{
	stateFirst:       "first date field",
	stateFirstSlash:  "'/'",
	stateSecond:      "second date field",
	stateSecondSlash: "'/'",
	stateYear:        "year",
	stateComma:       "','",
	stateClockSpace:  "space before time",
	stateHour:        "hour",
	stateColon:       "':'",
	stateMinute:      "minute",
	stateSuffix:      "' - ' separator",
	stateAccept:      "end",
}

func (s headerState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// matchHeader runs the header state machine on s starting at byte offset
// start. On failure it returns the state that rejected the input.
func matchHeader(s string, start int) (header, headerState, bool) {
	h := header{start: start}
	pos := start
	state := stateFirst

	for state != stateAccept {
		ok := false
		switch state {
		case stateFirst:
			h.first, pos, ok = digitRun(s, pos, 1, 2)
		case stateFirstSlash, stateSecondSlash:
			pos, ok = literal(s, pos, '/')
		case stateSecond:
			h.second, pos, ok = digitRun(s, pos, 1, 2)
		case stateYear:
			h.year, pos, ok = digitRun(s, pos, 2, 4)
		case stateComma:
			pos, ok = literal(s, pos, ',')
		case stateClockSpace:
			_, pos, ok = space(s, pos)
		case stateHour:
			h.hour, pos, ok = digitRun(s, pos, 1, 2)
		case stateColon:
			pos, ok = literal(s, pos, ':')
		case stateMinute:
			h.minute, pos, ok = digitRun(s, pos, 2, 2)
		case stateSuffix:
			pos, ok = suffix(s, pos, &h)
		}
		if !ok {
			return header{}, state, false
		}
		state++
	}

	h.end = pos
	return h, stateAccept, true
}

// digitRun consumes a maximal run of ASCII digits whose length must lie in
// [minLen, maxLen]. Every element that follows a digit run in the grammar
// is a non-digit, so a longer run can never match by taking a prefix.
// Scanning stops one digit past maxLen, which keeps each header attempt
// constant time inside long digit runs.
func digitRun(s string, pos, minLen, maxLen int) (string, int, bool) {
	end := pos
	for end < len(s) && end-pos <= maxLen && isDigit(s[end]) {
		end++
	}
	n := end - pos
	if n < minLen || n > maxLen {
		return "", pos, false
	}
	return s[pos:end], end, true
}

func literal(s string, pos int, c byte) (int, bool) {
	if pos < len(s) && s[pos] == c {
		return pos + 1, true
	}
	return pos, false
}

// space consumes one Unicode white-space rune (this includes U+202F).
func space(s string, pos int) (rune, int, bool) {
	if pos >= len(s) {
		return 0, pos, false
	}
	r, size := utf8.DecodeRuneInString(s[pos:])
	if r == utf8.RuneError || !unicode.IsSpace(r) {
		return 0, pos, false
	}
	return r, pos + size, true
}

// meridiem consumes "am" or "pm" in any letter case.
func meridiem(s string, pos int) (string, int, bool) {
	if pos+2 > len(s) {
		return "", pos, false
	}
	a, m := lower(s[pos]), lower(s[pos+1])
	if (a != 'a' && a != 'p') || m != 'm' {
		return "", pos, false
	}
	return string([]byte{a, m}), pos + 2, true
}

// suffix matches `[WS] [am|pm] WS "-" WS`. The alternatives are tried in
// the order a backtracking matcher would: optional parts present first.
func suffix(s string, pos int, h *header) (int, bool) {
	for _, withSpace := range []bool{true, false} {
		for _, withMeridiem := range []bool{true, false} {
			p := pos
			lead := rune(0)
			ok := true
			if withSpace {
				lead, p, ok = space(s, p)
			}
			mer := ""
			if ok && withMeridiem {
				mer, p, ok = meridiem(s, p)
			}
			if !ok {
				continue
			}
			if end, ok := separator(s, p); ok {
				h.meridiem = mer
				h.narrowSpace = mer != "" && lead == '\u202f'
				return end, true
			}
		}
	}
	return pos, false
}

// separator matches WS "-" WS.
func separator(s string, pos int) (int, bool) {
	_, p, ok := space(s, pos)
	if !ok {
		return pos, false
	}
	if p, ok = literal(s, p, '-'); !ok {
		return pos, false
	}
	if _, p, ok = space(s, p); !ok {
		return pos, false
	}
	return p, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// findHeader returns the leftmost header at or after byte offset from.
func findHeader(s string, from int) (header, bool) {
	for i := from; i < len(s); i++ {
		if !isDigit(s[i]) {
			continue
		}
		if h, _, ok := matchHeader(s, i); ok {
			return h, true
		}
	}
	return header{}, false
}

// Scanner iterates over the segments of a chat export.
// Text before the first header is discarded.
type Scanner struct {
	text    string
	next    header
	hasNext bool
}

// NewScanner creates a scanner over text.
func NewScanner(text string) *Scanner {
	s := &Scanner{text: text}
	s.next, s.hasNext = findHeader(text, 0)
	return s
}

// Next returns the next segment. Returns io.EOF when no headers remain.
func (s *Scanner) Next() (Segment, error) {
	if !s.hasNext {
		return Segment{}, io.EOF
	}
	cur := s.next
	bodyEnd := len(s.text)
	s.next, s.hasNext = findHeader(s.text, cur.end)
	if s.hasNext {
		bodyEnd = s.next.start
	}
	return Segment{
		Header: s.text[cur.start:cur.end],
		Body:   s.text[cur.end:bodyEnd],
		Offset: cur.start,
	}, nil
}

// Split returns every segment of text in source order.
// Text with no recognizable header yields an empty slice.
func Split(text string) []Segment {
	segments := []Segment{}
	sc := NewScanner(text)
	for {
		seg, err := sc.Next()
		if err == io.EOF {
			break
		}
		segments = append(segments, seg)
	}
	return segments
}
