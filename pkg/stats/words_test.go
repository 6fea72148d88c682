package stats

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		body string
		want []string
	}{
		{"Hi, there! it's_ok 42", []string{"hi", "there", "its_ok", "42"}},
		{"ÇA va?\nOui", []string{"ça", "va", "oui"}},
		{"😀 🎉 ...", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := Words(tt.body)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Words(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestLoadStopWords(t *testing.T) {
	s, err := LoadStopWords(strings.NewReader("The\n\n  and \nhai\n"))
	if err != nil {
		t.Fatalf("LoadStopWords() error = %v", err)
	}
	if len(s) != 3 {
		t.Errorf("len = %d, want 3", len(s))
	}
	for _, w := range []string{"the", "and", "hai"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	if s.Contains("") || s.Contains("hello") {
		t.Error("Contains() matched a word not in the list")
	}
}

func TestLoadStopWordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("hai\nhe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadStopWordsFile(path)
	if err != nil {
		t.Fatalf("LoadStopWordsFile() error = %v", err)
	}
	if !s.Contains("he") {
		t.Error("Contains(he) = false")
	}

	if _, err := LoadStopWordsFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadStopWordsFile() error = nil for missing file")
	}
}

func TestStopWords_ZeroValue(t *testing.T) {
	var s StopWords
	if s.Contains("the") {
		t.Error("nil StopWords should be empty")
	}
}

func TestCounter_MostCommon(t *testing.T) {
	c := newCounter()
	for _, k := range strings.Fields("b a c a b d a") {
		c.add(k)
	}

	want := []KeyCount{{"a", 3}, {"b", 2}, {"c", 1}, {"d", 1}}
	if got := c.mostCommon(0); !reflect.DeepEqual(got, want) {
		t.Errorf("mostCommon(0) = %v, want %v", got, want)
	}
	if got := c.mostCommon(2); !reflect.DeepEqual(got, want[:2]) {
		t.Errorf("mostCommon(2) = %v, want %v", got, want[:2])
	}
	if c.total() != 7 || c.get("a") != 3 || c.get("z") != 0 {
		t.Errorf("total() = %d, get(a) = %d", c.total(), c.get("a"))
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 2, 50},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := percent(tt.part, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}
