// Package tui is the interactive roster screen: user, series point,
// unused point, and catalog panels over app.Service. All state
// transitions happen on the single Update path; network work runs in
// commands whose results come back as messages, so a pull can never
// interleave with an edit.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
	"tableflip.dev/senryoku/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeEditField
	modeNewUser
	modeSearch
)

// Panel indices; their scroll offsets persist under these names.
const (
	panelUsers = iota
	panelSeries
	panelUnused
	panelCatalog
	panelCount
)

var panelNames = [panelCount]string{"users", "series", "unused", "catalog"}

// messages
type errMsg struct{ err error }
type snapshotMsg struct{ snap roster.Snapshot }
type pullTickMsg struct{}
type cacheChangedMsg struct{ ev store.Event }

// Model contains the UI state.
type Model struct {
	svc *app.Service
	ctx context.Context

	mode  mode
	focus int

	cursor [panelCount]int
	offset [panelCount]int
	height int
	width  int

	input     textinput.Model
	editField string

	status string

	pullEvery time.Duration
	events    <-chan store.Event
}

// New creates the UI model over the service, restoring persisted
// selection, filters, and scroll positions. events may be nil; when set,
// cache changes made by another process reload committed state.
func New(svc *app.Service, pullEvery time.Duration, events <-chan store.Event) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Prompt = "> "

	m := Model{
		svc:       svc,
		ctx:       context.Background(),
		mode:      modeNormal,
		focus:     panelUsers,
		input:     ti,
		status:    "j/k move, tab panels, enter edit/select, space own, n new user, x delete, / search, g group, r pull, q quit",
		pullEvery: pullEvery,
		events:    events,
	}
	for i, name := range panelNames {
		m.offset[i] = svc.Session.Scroll[name]
		m.cursor[i] = m.offset[i]
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pullCmd(), m.tickCmd(), m.watchCmd())
}

// watchCmd waits for one cache change event; the handler re-arms it.
func (m *Model) watchCmd() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return cacheChangedMsg{ev: ev}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	if m.pullEvery <= 0 {
		return nil
	}
	return tea.Tick(m.pullEvery, func(time.Time) tea.Msg { return pullTickMsg{} })
}

// pullCmd fetches the snapshot off the Update path. The merge itself
// happens back on Update so committed state is only ever mutated there.
func (m *Model) pullCmd() tea.Cmd {
	remote := m.svc.Remote
	if remote == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := remote.Export(ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		// Local state stands; the next pull reconciles.
		m.status = "ERR: " + msg.err.Error()
	case pullTickMsg:
		cmds = append(cmds, m.pullCmd(), m.tickCmd())
	case cacheChangedMsg:
		// Another process wrote the cache; committed state reloads while
		// staged drafts stay as they are.
		if msg.ev.Type == store.EventStateChanged {
			m.svc.State = m.svc.Persistence.LoadState(m.ctx)
		}
		cmds = append(cmds, m.watchCmd())
	case snapshotMsg:
		m.svc.State.Merge(msg.snap, m.svc.Policy)
		if err := m.svc.Persistence.SaveState(m.ctx, m.svc.State); err != nil {
			m.status = "ERR: " + err.Error()
		} else {
			m.status = fmt.Sprintf("pulled %d users", len(m.svc.Users("")))
		}
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditField:
		return m.handleEditKey(msg)
	case modeNewUser:
		return m.handleNewUserKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.persistScroll()
		return m, tea.Quit
	case "tab", "l":
		m.focus = (m.focus + 1) % panelCount
	case "shift+tab", "h":
		m.focus = (m.focus + panelCount - 1) % panelCount
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g":
		m.cycleGroup()
	case "r":
		m.status = "pulling..."
		return m, m.pullCmd()
	case "n":
		m.mode = modeNewUser
		m.input.SetValue("")
		m.input.Placeholder = "new user name"
		m.input.Focus()
	case "x":
		if m.focus == panelUsers {
			if name := m.userAt(m.cursor[panelUsers]); name != "" {
				if err := m.svc.DeleteUser(m.ctx, name); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = fmt.Sprintf("deleted %q", name)
				}
			}
		}
	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.svc.Session.ShipQuery)
		m.input.Placeholder = "filter catalog"
		m.input.Focus()
	case " ", "space":
		if m.focus == panelCatalog {
			m.toggleOwnedAtCursor()
		}
	case "enter":
		switch m.focus {
		case panelUsers:
			if name := m.userAt(m.cursor[panelUsers]); name != "" {
				if err := m.svc.Select(m.ctx, name); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = fmt.Sprintf("selected %q", name)
				}
			}
		case panelSeries, panelUnused:
			m.beginEdit()
		case panelCatalog:
			m.toggleOwnedAtCursor()
		}
	}
	return m, nil
}

// beginEdit opens the focused point field. The input starts from the
// displayed value (draft wins over committed) and every keystroke
// stages a draft, so a pull landing mid-edit cannot clobber the text.
func (m *Model) beginEdit() {
	user := m.svc.Session.SelectedUser
	if user == "" {
		m.status = "select a user first"
		return
	}
	field := m.fieldAtCursor()
	if field == "" {
		return
	}
	m.editField = field
	m.mode = modeEditField
	m.input.SetValue(m.svc.Display(user, field))
	m.input.Placeholder = "points"
	m.input.Focus()
}

func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	user := m.svc.Session.SelectedUser
	switch msg.String() {
	case "enter":
		// Accept key: behaves as a focus loss, which commits.
		if err := m.svc.Commit(m.ctx, user, m.editField); err != nil {
			m.status = "ERR: " + err.Error()
		}
		m.mode = modeNormal
		m.input.Blur()
		m.editField = ""
		return m, nil
	case "esc":
		// Abandon focus without committing; the draft stays staged.
		m.mode = modeNormal
		m.input.Blur()
		m.editField = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if err := m.svc.SetDraft(m.ctx, user, m.editField, m.input.Value()); err != nil {
		m.status = "ERR: " + err.Error()
	}
	return m, cmd
}

func (m Model) handleNewUserKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		if name == "" {
			return m, nil
		}
		// Creation is the one gated write: surface its failure loudly.
		if _, err := m.svc.CreateUser(m.ctx, name); err != nil {
			m.status = "CREATE FAILED: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("created %q", name)
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.Session.ShipQuery = m.input.Value()
	m.cursor[panelCatalog] = 0
	m.offset[panelCatalog] = 0
	return m, cmd
}

func (m *Model) cycleGroup() {
	groups := fleet.AllGroups()
	next := 0
	for i, g := range groups {
		if g == m.currentGroup() {
			next = (i + 1) % len(groups)
			break
		}
	}
	m.svc.Session.Group = groups[next]
	m.cursor[panelCatalog] = 0
	m.offset[panelCatalog] = 0
}

func (m *Model) currentGroup() fleet.Group {
	if m.svc.Session.Group == "" {
		return fleet.GroupAll
	}
	return m.svc.Session.Group
}

func (m *Model) panelLen(panel int) int {
	switch panel {
	case panelUsers:
		return len(m.svc.Users(m.svc.Session.UserQuery))
	case panelSeries:
		return len(m.svc.Index.SeriesNames())
	case panelUnused:
		return len(fleet.UnusedCategories())
	case panelCatalog:
		return len(m.svc.Catalog(m.currentGroup(), m.svc.Session.ShipQuery))
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	n := m.panelLen(m.focus)
	if n == 0 {
		return
	}
	c := m.cursor[m.focus] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.cursor[m.focus] = c

	rows := m.panelRows()
	if c < m.offset[m.focus] {
		m.offset[m.focus] = c
	}
	if c >= m.offset[m.focus]+rows {
		m.offset[m.focus] = c - rows + 1
	}
}

func (m *Model) panelRows() int {
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) userAt(i int) string {
	users := m.svc.Users(m.svc.Session.UserQuery)
	if i < 0 || i >= len(users) {
		return ""
	}
	return users[i]
}

func (m *Model) fieldAtCursor() string {
	switch m.focus {
	case panelSeries:
		names := m.svc.Index.SeriesNames()
		if i := m.cursor[panelSeries]; i >= 0 && i < len(names) {
			return draft.SeriesField(names[i])
		}
	case panelUnused:
		cats := fleet.UnusedCategories()
		if i := m.cursor[panelUnused]; i >= 0 && i < len(cats) {
			return draft.UnusedField(cats[i])
		}
	}
	return ""
}

func (m *Model) toggleOwnedAtCursor() {
	user := m.svc.Session.SelectedUser
	if user == "" {
		m.status = "select a user first"
		return
	}
	items := m.svc.Catalog(m.currentGroup(), m.svc.Session.ShipQuery)
	i := m.cursor[panelCatalog]
	if i < 0 || i >= len(items) {
		return
	}
	owned, err := m.svc.ToggleOwned(m.ctx, user, items[i])
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	if owned {
		m.status = fmt.Sprintf("%s owns %q", user, items[i].Name)
	} else {
		m.status = fmt.Sprintf("%s dropped %q", user, items[i].Name)
	}
}

// persistScroll records panel offsets into the session before quitting.
func (m *Model) persistScroll() {
	if m.svc.Session.Scroll == nil {
		m.svc.Session.Scroll = make(map[string]int, panelCount)
	}
	for i, name := range panelNames {
		m.svc.Session.Scroll[name] = m.offset[i]
	}
	if err := m.svc.SaveSession(m.ctx); err != nil {
		m.status = "ERR: " + err.Error()
	}
}
