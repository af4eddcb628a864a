package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Users prints the user list, marking the active selection.
func (pp *PrettyPrint) Users(names []string, selected string) {
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	t := color.New()
	b := color.New(color.Bold, color.FgHiGreen)
	for _, n := range names {
		if n == selected {
			_, _ = b.Printf("* %s\n", n)
			continue
		}
		_, _ = t.Printf("  %s\n", n)
	}
	_, _ = t.Println("")
}

// Totals prints the per-category totals in display order, grand total last.
func (pp *PrettyPrint) Totals(totals map[fleet.Category]int) {
	table := uitable.New()
	table.AddRow("CATEGORY", "PT")
	for _, c := range fleet.CategoryOrder() {
		if c == fleet.Overall {
			continue
		}
		table.AddRow(string(c), totals[c])
	}
	fmt.Println(table)

	b := color.New(color.Bold)
	_, _ = b.Printf("%s %d\n\n", strings.ToUpper(string(fleet.Overall)), totals[fleet.Overall])
}

// Catalog prints projected items with classification and, when an owner
// is selected, an ownership mark.
func (pp *PrettyPrint) Catalog(items []roster.Item, ix *fleet.Index, ownedBy func(name string) bool) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 48
	table.AddRow("", "NAME", "SERIES", "CATEGORY", "TYPE")
	for _, it := range items {
		mark := ""
		if ownedBy != nil && ownedBy(it.Name) {
			mark = "o"
		}
		table.AddRow(mark, it.Name, ix.SeriesFor(it.Name), string(ix.CategoryFor(it.Name)), it.Type)
	}
	fmt.Println(table)
	fmt.Println("")
}

// SeriesPoints prints a user's committed series point entries, absent
// entries rendered blank rather than zero.
func (pp *PrettyPrint) SeriesPoints(st *roster.State, user string, ix *fleet.Index) {
	table := uitable.New()
	table.AddRow("SERIES", "CATEGORY", "PT")
	for _, s := range ix.SeriesNames() {
		c, _ := ix.CategoryOfSeries(s)
		table.AddRow(s, string(c), st.SeriesPoint(user, s).String())
	}
	fmt.Println(table)
	fmt.Println("")
}

// UnusedPoints prints a user's unused point pools.
func (pp *PrettyPrint) UnusedPoints(st *roster.State, user string) {
	table := uitable.New()
	table.AddRow("CATEGORY", "UNUSED PT")
	for _, c := range fleet.UnusedCategories() {
		table.AddRow(string(c), st.UnusedPoint(user, c).String())
	}
	fmt.Println(table)
	fmt.Println("")
}
