package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("62"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func (m Model) View() string {
	rows := m.panelRows()

	user := m.svc.Session.SelectedUser
	totals := m.svc.Totals(user)

	left := m.renderUsers(rows)
	series := m.renderSeries(rows, user)
	unused := m.renderUnused(rows, user)
	catalog := m.renderCatalog(rows, user)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, series, unused, catalog)

	header := titleStyle.Render("senryoku") + faintStyle.Render(
		fmt.Sprintf("  user:%s  group:%s  overall:%d", orNone(user), m.currentGroup(), totals[fleet.Overall]))

	bottom := m.status
	if m.mode != modeNormal {
		bottom = m.input.View()
	}

	return strings.Join([]string{header, body, bottom}, "\n")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (m Model) renderPanel(panel int, title string, lines []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString(faintStyle.Render(" none"))
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	style := panelStyle
	if m.focus == panel {
		style = focusedPanelStyle
	}
	return style.Render(b.String())
}

func (m Model) window(panel, total, rows int) (int, int) {
	start := m.offset[panel]
	if start > total {
		start = total
	}
	end := start + rows
	if end > total {
		end = total
	}
	return start, end
}

func (m Model) renderUsers(rows int) string {
	users := m.svc.Users(m.svc.Session.UserQuery)
	start, end := m.window(panelUsers, len(users), rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := users[i]
		line := "  " + name
		if name == m.svc.Session.SelectedUser {
			line = "* " + name
		}
		lines = append(lines, m.markCursor(panelUsers, i, line))
	}
	return m.renderPanel(panelUsers, fmt.Sprintf("Users (%d)", len(users)), lines)
}

func (m Model) renderSeries(rows int, user string) string {
	names := m.svc.Index.SeriesNames()
	start, end := m.window(panelSeries, len(names), rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		s := names[i]
		val := ""
		if user != "" {
			val = m.svc.Display(user, draft.SeriesField(s))
		}
		lines = append(lines, m.markCursor(panelSeries, i, fmt.Sprintf("%-20s %6s", s, val)))
	}
	return m.renderPanel(panelSeries, "Series Pt", lines)
}

func (m Model) renderUnused(rows int, user string) string {
	cats := fleet.UnusedCategories()
	start, end := m.window(panelUnused, len(cats), rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := cats[i]
		val := ""
		if user != "" {
			val = m.svc.Display(user, draft.UnusedField(c))
		}
		lines = append(lines, m.markCursor(panelUnused, i, fmt.Sprintf("%-16s %6s", c, val)))
	}
	return m.renderPanel(panelUnused, "Unused Pt", lines)
}

func (m Model) renderCatalog(rows int, user string) string {
	items := m.svc.Catalog(m.currentGroup(), m.svc.Session.ShipQuery)
	start, end := m.window(panelCatalog, len(items), rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		it := items[i]
		mark := " "
		if user != "" && m.svc.State.IsOwned(user, it.Name) {
			mark = "o"
		}
		lines = append(lines, m.markCursor(panelCatalog, i,
			fmt.Sprintf("%s %-28s %s", mark, it.Name, faintStyle.Render(string(m.svc.Index.CategoryFor(it.Name))))))
	}
	return m.renderPanel(panelCatalog, fmt.Sprintf("Catalog (%d)", len(items)), lines)
}

func (m Model) markCursor(panel, i int, line string) string {
	if m.focus == panel && m.cursor[panel] == i {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}
