// Package fleet defines the classification vocabulary for the roster:
// hull categories, catalog filter groups, and the item classification index.
package fleet

import (
	"fmt"
	"strings"
)

// Category is one of the fixed classification buckets used for totals.
type Category string

const (
	Frigate       Category = "frigate"
	Destroyer     Category = "destroyer"
	Cruiser       Category = "cruiser"
	Fighter       Category = "fighter"
	Corvette      Category = "corvette"
	Battlecruiser Category = "battlecruiser"
	Carrier       Category = "carrier"
	Support       Category = "support"
	Battleship    Category = "battleship"

	// Module categories are tracked in the catalog but never contribute
	// to point totals.
	BattlecruiserModule Category = "battlecruiser module"
	CarrierModule       Category = "carrier module"
	SupportModule       Category = "support module"
	BattleshipModule    Category = "battleship module"

	// Overall is the grand-total slot. It is not a real category: it is
	// derived from the others and excluded from its own sum.
	Overall Category = "overall"
)

// CategoryOrder is the display order for totals, grand total last.
func CategoryOrder() []Category {
	return []Category{
		Frigate,
		Destroyer,
		Cruiser,
		Fighter,
		Corvette,
		Battlecruiser,
		Carrier,
		Support,
		Battleship,
		BattlecruiserModule,
		CarrierModule,
		SupportModule,
		BattleshipModule,
		Overall,
	}
}

// UnusedCategories lists the categories that carry an unused point pool.
func UnusedCategories() []Category {
	return []Category{
		Frigate,
		Destroyer,
		Cruiser,
		Fighter,
		Corvette,
		Battlecruiser,
		Carrier,
		Support,
		Battleship,
	}
}

// IsModule reports whether the category is excluded from point aggregation.
func (c Category) IsModule() bool {
	switch c {
	case BattlecruiserModule, CarrierModule, SupportModule, BattleshipModule:
		return true
	}
	return false
}

// ParseCategory converts a string to a Category or errors on unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range CategoryOrder() {
		if candidate == c {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("fleet: unknown category %q", raw)
}

// Group is a catalog filter bucket spanning one or more categories.
type Group string

const (
	GroupAll        Group = "all"
	GroupSmallCraft Group = "small"
	GroupLargeHull  Group = "large"
	GroupAircraft   Group = "aircraft"
	GroupModules    Group = "modules"
)

// AllGroups returns the supported filter groups.
func AllGroups() []Group {
	return []Group{GroupAll, GroupSmallCraft, GroupLargeHull, GroupAircraft, GroupModules}
}

// ParseGroup converts a string to a Group. Empty input means GroupAll.
func ParseGroup(raw string) (Group, error) {
	g := Group(strings.ToLower(strings.TrimSpace(raw)))
	if g == "" {
		return GroupAll, nil
	}
	for _, candidate := range AllGroups() {
		if candidate == g {
			return candidate, nil
		}
	}
	return GroupAll, fmt.Errorf("fleet: unknown group %q", raw)
}

// Contains reports whether the category falls inside the filter group.
func (g Group) Contains(c Category) bool {
	switch g {
	case GroupAll:
		return true
	case GroupSmallCraft:
		return c == Frigate || c == Destroyer
	case GroupAircraft:
		return c == Fighter
	case GroupModules:
		return c.IsModule()
	case GroupLargeHull:
		return c == Cruiser || c == Battlecruiser || c == Carrier ||
			c == Support || c == Battleship
	}
	return false
}
