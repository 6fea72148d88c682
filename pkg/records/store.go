package records

import (
	"fmt"
	"slices"
	"strconv"
)

// Field names a record attribute that the Store can group by.
type Field string

const (
	FieldAuthor      Field = "author"
	FieldDate        Field = "date"
	FieldYear        Field = "year"
	FieldMonthNumber Field = "month_number"
	FieldMonthName   Field = "month_name"
	FieldYearMonth   Field = "year_month"
	FieldDay         Field = "day"
	FieldDayName     Field = "day_name"
	FieldHour        Field = "hour"
	FieldMinute      Field = "minute"
	FieldHourBucket  Field = "hour_bucket"
)

// Fields lists every groupable field.
func Fields() []Field {
	return []Field{
		FieldAuthor, FieldDate, FieldYear, FieldMonthNumber, FieldMonthName,
		FieldYearMonth, FieldDay, FieldDayName, FieldHour, FieldMinute, FieldHourBucket,
	}
}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if slices.Contains(Fields(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Group is a set of records sharing one key for a field.
type Group struct {
	// Key is the field value. Numeric fields are zero-padded so that
	// lexical order matches numeric order.
	Key string `json:"key" yaml:"key"`

	// Records are the members of the group in source order.
	Records []Record `json:"records" yaml:"records"`
}

// Len returns the number of records in the group.
func (g Group) Len() int {
	return len(g.Records)
}

// Store is an immutable, ordered table of chat records.
// A Store is safe for concurrent reads.
type Store struct {
	records []Record
}

// NewStore creates a store over the given records, which must already be in
// source order. The slice is copied.
func NewStore(recs []Record) *Store {
	return &Store{records: slices.Clone(recs)}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every record in source order.
func (s *Store) All() []Record {
	out := slices.Clone(s.records)
	if out == nil {
		out = []Record{}
	}
	return out
}

// At returns the i-th record.
func (s *Store) At(i int) Record {
	return s.records[i]
}

// Filter returns a new store holding the records for which keep returns true.
func (s *Store) Filter(keep func(Record) bool) *Store {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Store{records: out}
}

// ByAuthor returns the records sent by author.
func (s *Store) ByAuthor(author string) *Store {
	return s.Filter(func(r Record) bool { return r.Author == author })
}

// WithoutNotifications returns the records that have a human author.
func (s *Store) WithoutNotifications() *Store {
	return s.Filter(func(r Record) bool { return !r.IsNotification() })
}

// Authors returns the distinct authors in first-appearance order,
// including GroupNotification when present.
func (s *Store) Authors() []string {
	seen := make(map[string]bool)
	authors := []string{}
	for _, r := range s.records {
		if !seen[r.Author] {
			seen[r.Author] = true
			authors = append(authors, r.Author)
		}
	}
	return authors
}

// Participants returns the distinct human authors, sorted.
func (s *Store) Participants() []string {
	authors := slices.DeleteFunc(s.Authors(), func(a string) bool { return a == GroupNotification })
	slices.Sort(authors)
	return authors
}

// HasAuthor reports whether any record was sent by author.
func (s *Store) HasAuthor(author string) bool {
	return slices.ContainsFunc(s.records, func(r Record) bool { return r.Author == author })
}

// Unresolved returns the number of records without a timestamp.
func (s *Store) Unresolved() int {
	n := 0
	for _, r := range s.records {
		if !r.Resolved() {
			n++
		}
	}
	return n
}

// GroupBy partitions records by field. Groups appear in first-appearance
// order. Records without a timestamp are skipped for calendar fields.
func (s *Store) GroupBy(field Field) []Group {
	index := make(map[string]int)
	groups := []Group{}
	for _, r := range s.records {
		key, ok := Key(r, field)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Count returns the number of records per key for field.
func (s *Store) Count(field Field) map[string]int {
	counts := make(map[string]int)
	for _, r := range s.records {
		if key, ok := Key(r, field); ok {
			counts[key]++
		}
	}
	return counts
}

// Key returns the grouping key of r for field. It returns false when the
// field is a calendar field and r has no timestamp, or the field is unknown.
func Key(r Record, field Field) (string, bool) {
	if field == FieldAuthor {
		return r.Author, true
	}
	c := r.Calendar
	if c == nil {
		return "", false
	}
	switch field {
	case FieldDate:
		return c.Date, true
	case FieldYear:
		return strconv.Itoa(c.Year), true
	case FieldMonthNumber:
		return pad2(c.MonthNumber), true
	case FieldMonthName:
		return c.MonthName, true
	case FieldYearMonth:
		return strconv.Itoa(c.Year) + "-" + pad2(c.MonthNumber), true
	case FieldDay:
		return pad2(c.Day), true
	case FieldDayName:
		return c.DayName, true
	case FieldHour:
		return pad2(c.Hour), true
	case FieldMinute:
		return pad2(c.Minute), true
	case FieldHourBucket:
		return c.HourBucket, true
	default:
		return "", false
	}
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
