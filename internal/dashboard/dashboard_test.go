package dashboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

const testChat = "1/1/24, 09:00 - Zoe created group \"Trip\"\n" +
	"1/1/24, 09:05 - Zoe: Hello world 😀\n" +
	"1/1/24, 21:30 - Bob: [red]hello[-] again\n" +
	"2/1/24, 23:10 - Zoe: <Media omitted>\n" +
	"31/2/24, 10:00 - Bob: lost\n"

func newDashboard(t *testing.T) *Dashboard {
	t.Helper()
	d, err := New(context.Background(), parser.Parse(testChat), stats.NewAnalyzer(), Options{Title: "chat.txt"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestUsers(t *testing.T) {
	got := Users(parser.Parse(testChat))
	want := []string{"Overall", "Bob", "Zoe"}
	if !slices.Equal(got, want) {
		t.Errorf("Users() = %v, want %v", got, want)
	}

	if got := Users(parser.Parse("")); !slices.Equal(got, []string{"Overall"}) {
		t.Errorf("Users(empty) = %v, want [Overall]", got)
	}
}

func TestNew_SelectsOverall(t *testing.T) {
	d := newDashboard(t)

	if d.User() != stats.Overall {
		t.Errorf("User() = %q, want %q", d.User(), stats.Overall)
	}
	if d.CurrentPage() != PageTopStats {
		t.Errorf("CurrentPage() = %q, want %q", d.CurrentPage(), PageTopStats)
	}
	if d.Result().TopStats.Messages != 5 {
		t.Errorf("Messages = %d, want 5", d.Result().TopStats.Messages)
	}
	if d.users.GetItemCount() != 3 {
		t.Errorf("sidebar has %d users, want 3", d.users.GetItemCount())
	}
	// Header row plus one row per record.
	if d.records.GetRowCount() != 6 {
		t.Errorf("records table has %d rows, want 6", d.records.GetRowCount())
	}
}

func TestSelect(t *testing.T) {
	d := newDashboard(t)

	if err := d.Select(context.Background(), "Bob"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if d.User() != "Bob" || d.Result().TopStats.Messages != 2 {
		t.Errorf("selection = %q with %d messages, want Bob with 2", d.User(), d.Result().TopStats.Messages)
	}
	if d.records.GetRowCount() != 3 {
		t.Errorf("records table has %d rows, want 3", d.records.GetRowCount())
	}
	if !strings.Contains(d.statusBar.GetText(true), "Bob") {
		t.Errorf("status bar = %q, want selected user", d.statusBar.GetText(true))
	}

	err := d.Select(context.Background(), "Dave")
	if !errors.Is(err, stats.ErrUnknownUser) {
		t.Errorf("Select(Dave) error = %v, want %v", err, stats.ErrUnknownUser)
	}
	if d.User() != "Bob" {
		t.Errorf("User() = %q after failed select, want Bob", d.User())
	}
}

func TestHandleKey(t *testing.T) {
	d := newDashboard(t)

	for i, name := range PageNames() {
		ev := tcell.NewEventKey(tcell.KeyRune, rune('1'+i), tcell.ModNone)
		if got := d.handleKey(ev); got != nil {
			t.Errorf("handleKey(%d) passed the event through", i+1)
		}
		if d.CurrentPage() != name {
			t.Errorf("after key %d CurrentPage() = %q, want %q", i+1, d.CurrentPage(), name)
		}
	}

	ev := tcell.NewEventKey(tcell.KeyRune, '9', tcell.ModNone)
	if got := d.handleKey(ev); got != ev {
		t.Error("handleKey(9) should pass the event through")
	}

	// Stopping an application that is not running is a no-op.
	if got := d.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); got != nil {
		t.Error("handleKey(q) should consume the event")
	}
}

func TestRender(t *testing.T) {
	res, err := stats.NewAnalyzer().Analyze(context.Background(), parser.Parse(testChat), stats.Overall)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  string
		want []string
	}{
		{"top stats", renderTopStats(res), []string{"Messages", "Most Busy Users", "1 messages have a timestamp"}},
		{"timelines", renderTimelines(res), []string{"Jan 2024", "2024-01-02"}},
		{"activity", renderActivity(res), []string{"Monday", "January"}},
		{"heatmap", renderHeatmap(res), []string{"Monday", "busiest cell: 2"}},
		{"words", renderWords(res), []string{"hello"}},
		{"emoji", renderEmoji(res), []string{"😀"}},
	}
	for _, tt := range tests {
		for _, w := range tt.want {
			if !strings.Contains(tt.got, w) {
				t.Errorf("%s: missing %q in\n%s", tt.name, w, tt.got)
			}
		}
	}
}

func TestRender_Empty(t *testing.T) {
	res, err := stats.NewAnalyzer().Analyze(context.Background(), parser.Parse(""), stats.Overall)
	if err != nil {
		t.Fatal(err)
	}
	if got := renderHeatmap(res); !strings.Contains(got, "no timestamped messages") {
		t.Errorf("renderHeatmap() = %q", got)
	}
	if got := renderWords(res); !strings.Contains(got, "none") {
		t.Errorf("renderWords() = %q", got)
	}
}
