// Package filter decides which day cards are shown for a selected category.
//
// A category is "all", "festivo" or a section type tag. Filtering only
// toggles a visibility flag per card; cards are never removed.
package filter

import "github.com/claude/wodboard/internal/render"

const (
	All     = "all"
	Festive = "festivo"
)

// Matches reports whether a card is visible under category.
func Matches(card render.Card, category string) bool {
	switch category {
	case All:
		return true
	case Festive:
		return card.Festive
	default:
		return card.HasNormalSection(category)
	}
}

// ComputeVisibility returns the IDs of the cards visible under category.
func ComputeVisibility(cards []render.Card, category string) map[string]bool {
	visible := make(map[string]bool, len(cards))
	for _, c := range cards {
		if Matches(c, category) {
			visible[c.ID] = true
		}
	}
	return visible
}

// State is the visible/hidden flag of every card. New cards start visible.
type State struct {
	order  []string
	hidden map[string]bool
}

// NewState returns a State with every card visible.
func NewState(cards []render.Card) *State {
	s := &State{hidden: make(map[string]bool, len(cards))}
	for _, c := range cards {
		s.order = append(s.order, c.ID)
	}
	return s
}

// Apply sets each card's flag for category. Applying the same category
// twice gives the same result.
func (s *State) Apply(cards []render.Card, category string) {
	visible := ComputeVisibility(cards, category)
	for _, c := range cards {
		s.hidden[c.ID] = !visible[c.ID]
	}
}

// Visible reports whether the card is currently shown.
func (s *State) Visible(id string) bool {
	return !s.hidden[id]
}

// VisibleIDs returns the shown card IDs in card order.
func (s *State) VisibleIDs() []string {
	var ids []string
	for _, id := range s.order {
		if !s.hidden[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
