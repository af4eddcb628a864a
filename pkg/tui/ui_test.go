package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
	"tableflip.dev/senryoku/pkg/store"
)

func testService(t *testing.T) *app.Service {
	t.Helper()
	ix, err := fleet.NewIndex(fleet.Document{Items: []fleet.Entry{
		{Name: "kirov", Series: "kirov", Category: fleet.Cruiser},
		{Name: "reliat", Series: "reliat", Category: fleet.Frigate},
	}})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	svc := app.New(store.Open(t.TempDir()), ix, nil, roster.PolicyGuarded)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func press(m Model, msgs ...tea.KeyPressMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
}

func TestNewUserFlow(t *testing.T) {
	svc := testService(t)
	m := New(svc, 0, nil)
	m.height = 24

	m = press(m, key("n"))
	if m.mode != modeNewUser {
		t.Fatalf("expected new-user mode")
	}
	m = press(m, key("a"), key("l"))
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNormal {
		t.Fatalf("expected to return to normal mode")
	}
	if !svc.State.HasUser("al") {
		t.Fatalf("expected user created, have %v", svc.Users(""))
	}
	if svc.Session.SelectedUser != "al" {
		t.Fatalf("new user becomes the selection")
	}
}

func TestNewUserEscapeCancels(t *testing.T) {
	svc := testService(t)
	m := New(svc, 0, nil)

	m = press(m, key("n"), key("a"))
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal {
		t.Fatalf("esc leaves input mode")
	}
	if len(svc.Users("")) != 0 {
		t.Fatalf("no user should be created on cancel")
	}
}

func TestEditCommitFlow(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}

	m := New(svc, 0, nil)
	m.height = 24
	m.focus = panelSeries // cursor 0 points at kirov

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeEditField {
		t.Fatalf("enter on a point row opens the editor")
	}

	m = press(m, key("7"))
	if got, ok := svc.Drafts.Get("alice", m.editField); !ok || got != "7" {
		t.Fatalf("every keystroke stages a draft, got %q ok=%v", got, ok)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNormal {
		t.Fatalf("enter closes the editor")
	}
	if got := svc.State.SeriesPoint("alice", "kirov"); got.Value() != 7 {
		t.Fatalf("expected committed 7, got %v", got)
	}
	if svc.Drafts.Len() != 0 {
		t.Fatalf("commit consumes the draft")
	}
}

func TestEditEscapeLeavesDraftStaged(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}

	m := New(svc, 0, nil)
	m.height = 24
	m.focus = panelSeries

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	field := m.editField
	m = press(m, key("9"))
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if m.mode != modeNormal {
		t.Fatalf("esc returns to normal mode")
	}
	if svc.State.SeriesPoint("alice", "kirov").Set() {
		t.Fatalf("esc must not commit")
	}
	if got, ok := svc.Drafts.Get("alice", field); !ok || got != "9" {
		t.Fatalf("the draft stays staged after esc, got %q ok=%v", got, ok)
	}
}

func TestToggleOwnershipFromCatalog(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}

	m := New(svc, 0, nil)
	m.height = 24
	m.focus = panelCatalog // cursor 0 points at kirov (master order)

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !svc.State.IsOwned("alice", "kirov") {
		t.Fatalf("enter on a catalog row toggles ownership")
	}
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if svc.State.IsOwned("alice", "kirov") {
		t.Fatalf("second toggle removes ownership")
	}
}

func TestSnapshotMergesOnUpdatePath(t *testing.T) {
	svc := testService(t)
	m := New(svc, 0, nil)

	next, _ := m.Update(snapshotMsg{snap: roster.Snapshot{
		Users:        map[string][]roster.Item{"bob": {{Name: "reliat", Type: "frigate"}}},
		SeriesPoints: map[string]map[string]int{"bob": {"reliat": 6}},
	}})
	m = next.(Model)

	if !svc.State.IsOwned("bob", "reliat") {
		t.Fatalf("snapshot ownership should be merged")
	}
	if !strings.Contains(m.status, "pulled") {
		t.Fatalf("expected pull status, got %q", m.status)
	}
}

func TestCacheChangeReloadsState(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	m := New(svc, 0, nil)

	// Another process writes the shared cache.
	other := roster.NewState()
	other.EnsureUser("carol")
	if err := svc.Persistence.SaveState(ctx, other); err != nil {
		t.Fatalf("save: %v", err)
	}

	next, _ := m.Update(cacheChangedMsg{ev: store.Event{Type: store.EventStateChanged}})
	_ = next.(Model)

	if !svc.State.HasUser("carol") {
		t.Fatalf("a state change event reloads committed state")
	}
}

func TestGroupCycleResetsCatalogCursor(t *testing.T) {
	svc := testService(t)
	m := New(svc, 0, nil)
	m.height = 24
	m.focus = panelCatalog
	m = press(m, key("j"))
	if m.cursor[panelCatalog] != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor[panelCatalog])
	}

	m = press(m, key("g"))
	if m.currentGroup() != fleet.GroupSmallCraft {
		t.Fatalf("expected next group after all, got %q", m.currentGroup())
	}
	if m.cursor[panelCatalog] != 0 {
		t.Fatalf("group change resets the catalog cursor")
	}
}

func TestViewRendersPanels(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.State.ToggleOwned("alice", roster.Item{Name: "kirov", Type: "cruiser"})

	m := New(svc, 0, nil)
	m.height = 24
	m.width = 120

	view := stripANSI(m.View())
	for _, want := range []string{"Users (1)", "alice", "Series Pt", "Unused Pt", "Catalog (2)", "kirov", "user:alice"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q; view=%q", want, view)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
