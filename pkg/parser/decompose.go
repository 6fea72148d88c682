package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// Decompose splits segment body text into its author and message.
//
// The author prefix ends at the first ':' that is not the first character
// and is followed by a white-space rune. That single rune is dropped and the
// rest is the message. Without such a prefix the text is a group
// notification and is returned whole.
func Decompose(text string) (author, body string) {
	if len(text) < 2 {
		return records.GroupNotification, text
	}
	from := 1
	for {
		i := strings.IndexByte(text[from:], ':')
		if i < 0 {
			return records.GroupNotification, text
		}
		colon := from + i
		r, size := utf8.DecodeRuneInString(text[colon+1:])
		if size > 0 && r != utf8.RuneError && unicode.IsSpace(r) {
			return text[:colon], text[colon+1+size:]
		}
		from = colon + 1
	}
}
