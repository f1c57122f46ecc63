// Package page materializes a rendered tree as an HTML document with the
// fixed mount points the stylesheet targets.
package page

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/claude/wodboard/internal/filter"
	"github.com/claude/wodboard/internal/render"
)

// FallbackMessage replaces the card grid when the schedule cannot be shown.
const FallbackMessage = "Error cargando planificación. Verifica que el archivo JSON existe."

// Options are the page-level settings from config.
type Options struct {
	Lang       string
	Stylesheet string
}

// View is what one page request shows. A nil Tree shows the fallback
// message. A nil State shows every card; a nil Bar shows no filter controls.
type View struct {
	Tree  *render.Tree
	State *filter.State
	Bar   *filter.Bar
}

// Write renders the full HTML document.
func Write(w io.Writer, v View, opts Options) error {
	return html.Render(w, Document(v, opts))
}

// Document builds the document node tree.
func Document(v View, opts Options) *html.Node {
	lang := opts.Lang
	if lang == "" {
		lang = "es"
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem(atom.Html, "")
	setAttr(root, "lang", lang)
	doc.AppendChild(root)

	head := elem(atom.Head, "")
	meta := elem(atom.Meta, "")
	setAttr(meta, "charset", "utf-8")
	head.AppendChild(meta)
	viewport := elem(atom.Meta, "")
	setAttr(viewport, "name", "viewport")
	setAttr(viewport, "content", "width=device-width, initial-scale=1")
	head.AppendChild(viewport)

	var header render.Header
	if v.Tree != nil {
		header = v.Tree.Header
	}
	head.AppendChild(elem(atom.Title, "", text(header.BoxName)))
	if opts.Stylesheet != "" {
		link := elem(atom.Link, "")
		setAttr(link, "rel", "stylesheet")
		setAttr(link, "href", opts.Stylesheet)
		head.AppendChild(link)
	}
	root.AppendChild(head)

	body := elem(atom.Body, "")
	root.AppendChild(body)

	top := elem(atom.Header, "page-header")
	top.AppendChild(elem(atom.H1, "box-name", text(header.BoxName)))
	top.AppendChild(elem(atom.P, "subtitle", elem(atom.Span, "subtitle-text", text(header.Subtitle))))
	top.AppendChild(elem(atom.P, "week-dates", elem(atom.Span, "week-dates-text", text(header.WeekDates))))
	body.AppendChild(top)

	if v.Tree != nil && v.Bar != nil {
		body.AppendChild(FilterBar(v.Bar))
	}

	grid := elem(atom.Main, "week-grid")
	body.AppendChild(grid)
	if v.Tree == nil {
		Mount(grid, []*html.Node{Fallback()})
	} else {
		Mount(grid, Cards(v.Tree, v.State))
	}
	return doc
}

// Mount replaces all children of container.
func Mount(container *html.Node, children []*html.Node) {
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}
	for _, child := range children {
		container.AppendChild(child)
	}
}

// Fallback is the single inline error message shown instead of the cards.
func Fallback() *html.Node {
	return elem(atom.Div, "load-error", text(FallbackMessage))
}

// FilterBar renders the filter controls. Each control links to the same
// page with its category so selection works without scripting.
func FilterBar(bar *filter.Bar) *html.Node {
	nav := elem(atom.Nav, "filters")
	for _, c := range bar.Controls {
		class := "filter-btn"
		if c.Active {
			class += " active"
		}
		a := elem(atom.A, class, text(c.Label))
		setAttr(a, "data-filter", c.Category)
		setAttr(a, "href", FilterHref(c.Category))
		nav.AppendChild(a)
	}
	return nav
}

// FilterHref is the query link that selects category.
func FilterHref(category string) string {
	return "?" + url.Values{"filter": {category}}.Encode()
}

// Cards renders one node per card, hiding those the state marks hidden.
func Cards(tree *render.Tree, state *filter.State) []*html.Node {
	nodes := make([]*html.Node, 0, len(tree.Cards))
	for _, c := range tree.Cards {
		nodes = append(nodes, card(c, state == nil || state.Visible(c.ID)))
	}
	return nodes
}

func card(c render.Card, visible bool) *html.Node {
	classes := []string{"day-card"}
	if c.Festive {
		classes = append(classes, "festivo")
	}
	if !visible {
		classes = append(classes, "hidden")
	}
	n := elem(atom.Div, strings.Join(classes, " "))
	setAttr(n, "id", c.ID)
	setAttr(n, "style", "animation-delay: "+c.AnimationDelay)

	headerClass := "day-header"
	if c.Festive {
		headerClass += " festivo"
	}
	header := elem(atom.Div, headerClass,
		elem(atom.Div, "day-name", text(c.Name)),
		elem(atom.Div, "day-date", text(c.Date)),
	)
	if c.Badge != nil {
		header.AppendChild(elem(atom.Div, "festivo-badge", text(*c.Badge)))
	}
	n.AppendChild(header)

	for _, s := range c.Sections {
		n.AppendChild(section(s))
	}
	return n
}

func section(s render.Section) *html.Node {
	classes := []string{"program-section"}
	if s.Type != "" {
		classes = append(classes, s.Type)
	}
	if s.Festive != nil {
		classes = append(classes, "festivo")
	}
	n := elem(atom.Div, strings.Join(classes, " "))

	if s.Festive != nil {
		n.AppendChild(elem(atom.Div, "festivo-icon", text(s.Festive.Icon)))
		n.AppendChild(elem(atom.Div, "program-title", text(s.Festive.Title)))
		n.AppendChild(elem(atom.Div, "festivo-text", text(s.Festive.Content)))
		return n
	}

	w := s.Workout
	if w == nil {
		return n
	}
	if w.Title != nil {
		n.AppendChild(elem(atom.Div, "program-title", text(*w.Title)))
	}
	content := elem(atom.Div, "workout-content")
	for _, b := range w.Badges {
		content.AppendChild(elem(atom.Div, b.Type+"-wod", text(b.Text)))
	}
	if w.Exercises != nil {
		list := elem(atom.Ul, "exercise-list")
		for _, ex := range w.Exercises {
			list.AppendChild(elem(atom.Li, "", text(ex)))
		}
		content.AppendChild(list)
	}
	if w.WorkoutTitle != nil {
		content.AppendChild(elem(atom.Div, "workout-title", text(*w.WorkoutTitle)))
	}
	if w.WorkoutDetails != nil {
		details := elem(atom.Div, "workout-details")
		for i, d := range w.WorkoutDetails {
			if i > 0 {
				details.AppendChild(elem(atom.Br, ""))
			}
			details.AppendChild(text(d))
		}
		content.AppendChild(details)
	}
	n.AppendChild(content)
	return n
}

func elem(a atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		setAttr(n, "class", class)
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
