package detector

import "github.com/ccollicutt/chatlens/pkg/parser"

// HeaderFormat is a known reading of chat export headers.
type HeaderFormat struct {
	Name     string           // Human-readable name
	Order    parser.DateOrder // Day/month order used to resolve headers
	Examples []string         // Example headers
}

// DefaultFormats returns the header readings to try.
// The day-first reading comes first and wins ties.
func DefaultFormats() []*HeaderFormat {
	return []*HeaderFormat{
		{
			Name:  "Day first (D/M/Y)",
			Order: parser.DayFirst,
			Examples: []string{
				"31/12/23, 23:59 - ",
				"31/12/2023, 11:59 pm - ",
			},
		},
		{
			Name:  "Month first (M/D/Y)",
			Order: parser.MonthFirst,
			Examples: []string{
				"12/31/23, 23:59 - ",
				"12/31/23, 11:59 PM - ",
			},
		},
	}
}
