package filter

import "github.com/claude/wodboard/internal/models"

// Control is one filter button.
type Control struct {
	Category string
	Label    string
	Active   bool
}

// Bar is the set of filter controls. At most one control is active, and
// exactly one once Select has been called.
type Bar struct {
	Controls []Control
}

// NewBar builds the controls for a document: all, every section type in
// first-seen order, then festivo when the week has a festive day. labels
// overrides the displayed text per category. "all" starts active.
func NewBar(doc *models.ScheduleDocument, labels map[string]string) *Bar {
	b := &Bar{}
	b.add(All, labels)
	for _, t := range doc.SectionTypes() {
		b.add(t, labels)
	}
	if doc.HasFestiveDay() {
		b.add(Festive, labels)
	}
	b.Controls[0].Active = true
	return b
}

func (b *Bar) add(category string, labels map[string]string) {
	label := category
	if l, ok := labels[category]; ok && l != "" {
		label = l
	}
	b.Controls = append(b.Controls, Control{Category: category, Label: label})
}

// Select marks category as the single active control. A category with no
// control gets one appended.
func (b *Bar) Select(category string) {
	found := false
	for i := range b.Controls {
		b.Controls[i].Active = b.Controls[i].Category == category
		found = found || b.Controls[i].Active
	}
	if !found {
		b.Controls = append(b.Controls, Control{Category: category, Label: category, Active: true})
	}
}

// Active returns the active category, or "" when none is active.
func (b *Bar) Active() string {
	for _, c := range b.Controls {
		if c.Active {
			return c.Category
		}
	}
	return ""
}
