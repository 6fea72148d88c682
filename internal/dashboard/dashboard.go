// Package dashboard is an interactive terminal view of a parsed chat export:
// a sidebar of users and one page per group of statistics.
package dashboard

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// Page names in display order. Keys 1..7 switch to them.
const (
	PageTopStats   = "Top Stats"
	PageTimelines  = "Timelines"
	PageActivity   = "Activity"
	PageHeatmap    = "Heatmap"
	PageWords      = "Words"
	PageEmoji      = "Emoji"
	PageRawRecords = "Raw Records"
)

// PageNames returns every page in display order.
func PageNames() []string {
	return []string{PageTopStats, PageTimelines, PageActivity, PageHeatmap, PageWords, PageEmoji, PageRawRecords}
}

// Options configures the dashboard.
type Options struct {
	// Title is shown in the status bar, usually the export's file name.
	Title  string
	Logger *zap.Logger
}

// Dashboard is the terminal application.
type Dashboard struct {
	app       *tview.Application
	pages     *tview.Pages
	users     *tview.List
	views     map[string]*tview.TextView
	records   *tview.Table
	statusBar *tview.TextView

	store    *records.Store
	analyzer *stats.Analyzer
	logger   *zap.Logger
	title    string

	user   string
	result *stats.Result
	page   string
}

// New builds the dashboard for store. The Overall statistics are computed
// before returning.
func New(ctx context.Context, store *records.Store, analyzer *stats.Analyzer, opts Options) (*Dashboard, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		users:     tview.NewList().ShowSecondaryText(false),
		views:     make(map[string]*tview.TextView),
		records:   tview.NewTable().SetSelectable(true, false).SetFixed(1, 0),
		statusBar: tview.NewTextView().SetDynamicColors(true),
		store:     store,
		analyzer:  analyzer,
		logger:    logger,
		title:     opts.Title,
	}

	d.setupLayout()
	for _, user := range Users(store) {
		d.users.AddItem(user, "", 0, func() {
			if err := d.Select(ctx, user); err != nil {
				d.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
			}
		})
	}
	d.users.SetChangedFunc(func(_ int, user, _ string, _ rune) {
		if err := d.Select(ctx, user); err != nil {
			d.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
		}
	})

	if err := d.Select(ctx, stats.Overall); err != nil {
		return nil, err
	}
	return d, nil
}

// Users lists the sidebar entries: Overall first, then every participant
// sorted by name. Notifications are not a user.
func Users(store *records.Store) []string {
	return append([]string{stats.Overall}, store.Participants()...)
}

func (d *Dashboard) setupLayout() {
	d.users.SetBorder(true).SetTitle(" Users ")

	for _, name := range PageNames() {
		if name == PageRawRecords {
			d.records.SetBorder(true).SetTitle(" " + name + " ")
			d.pages.AddPage(name, d.records, true, false)
			continue
		}
		tv := tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(true).
			SetWrap(false)
		tv.SetBorder(true).SetTitle(" " + name + " ")
		d.views[name] = tv
		d.pages.AddPage(name, tv, true, false)
	}

	body := tview.NewFlex().
		AddItem(d.users, 28, 0, true).
		AddItem(d.pages, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(d.statusBar, 1, 0, false)

	d.app.SetRoot(root, true)
	d.app.SetInputCapture(d.handleKey)
	d.ShowPage(PageTopStats)
}

// handleKey switches pages on 1..7, moves focus on Tab and quits on q.
func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		if d.users.HasFocus() {
			d.app.SetFocus(d.pages)
		} else {
			d.app.SetFocus(d.users)
		}
		return nil
	case tcell.KeyRune:
		r := event.Rune()
		if r == 'q' {
			d.app.Stop()
			return nil
		}
		names := PageNames()
		if r >= '1' && int(r-'1') < len(names) {
			d.ShowPage(names[r-'1'])
			return nil
		}
	}
	return event
}

// ShowPage brings the named page to the front.
func (d *Dashboard) ShowPage(name string) {
	d.pages.SwitchToPage(name)
	d.page = name
	d.refreshStatus()
}

// CurrentPage returns the page in front.
func (d *Dashboard) CurrentPage() string {
	return d.page
}

// User returns the selected user.
func (d *Dashboard) User() string {
	return d.user
}

// Result returns the statistics shown for the selected user.
func (d *Dashboard) Result() *stats.Result {
	return d.result
}

// Select computes statistics for user and redraws every page.
func (d *Dashboard) Select(ctx context.Context, user string) error {
	res, err := d.analyzer.Analyze(ctx, d.store, user)
	if err != nil {
		return err
	}
	d.user = res.User
	d.result = res

	d.views[PageTopStats].SetText(renderTopStats(res)).ScrollToBeginning()
	d.views[PageTimelines].SetText(renderTimelines(res)).ScrollToBeginning()
	d.views[PageActivity].SetText(renderActivity(res)).ScrollToBeginning()
	d.views[PageHeatmap].SetText(renderHeatmap(res)).ScrollToBeginning()
	d.views[PageWords].SetText(renderWords(res)).ScrollToBeginning()
	d.views[PageEmoji].SetText(renderEmoji(res)).ScrollToBeginning()

	selected := d.store
	if !stats.IsOverall(user) {
		selected = d.store.ByAuthor(user)
	}
	d.fillRecords(selected)
	d.refreshStatus()

	d.logger.Debug("dashboard selection", zap.String("user", d.user))
	return nil
}

func (d *Dashboard) fillRecords(store *records.Store) {
	d.records.Clear()
	for col, h := range []string{" #", " Date", " Time", " Author", " Message"} {
		d.records.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(tview.Styles.SecondaryTextColor))
	}
	for i, r := range store.All() {
		row := i + 1
		date, clock := "-", "-"
		if r.Calendar != nil {
			date = r.Calendar.Date
			clock = fmt.Sprintf("%02d:%02d", r.Calendar.Hour, r.Calendar.Minute)
		}
		d.records.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf(" %d", r.Index)))
		d.records.SetCell(row, 1, tview.NewTableCell(" "+date))
		d.records.SetCell(row, 2, tview.NewTableCell(" "+clock))
		d.records.SetCell(row, 3, tview.NewTableCell(" "+tview.Escape(r.Author)).SetMaxWidth(24))
		d.records.SetCell(row, 4, tview.NewTableCell(" "+tview.Escape(output.Snippet(r.Body, 120))).SetExpansion(1))
	}
	d.records.ScrollToBeginning()
}

func (d *Dashboard) refreshStatus() {
	d.setStatus("")
}

func (d *Dashboard) setStatus(flash string) {
	text := fmt.Sprintf(" [fuchsia::b]%s[-::-]", tview.Escape(d.title))
	if d.user != "" {
		text += " [gray]|[-] " + tview.Escape(d.user)
	}
	text += " [gray]|[-] " + tview.Escape(d.page) + " [gray]| 1-7 pages, Tab focus, q quit[-]"
	if flash != "" {
		text += "  " + flash
	}
	d.statusBar.SetText(text)
}

// Run starts the terminal application. Blocks until q is pressed.
func (d *Dashboard) Run() error {
	return d.app.Run()
}

