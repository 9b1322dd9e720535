package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
	"github.com/jask/almacen/internal/view"
)

// renderer draws an element tree as terminal text. Unknown elements stack
// their text and children vertically.
type renderer struct {
	focus *dom.Element
}

// Render draws root with focus marking the focused link, if any.
func Render(root, focus *dom.Element) string {
	if root == nil {
		return ""
	}
	return renderer{focus: focus}.block(root)
}

func (r renderer) block(el *dom.Element) string {
	switch {
	case el.HasClass(view.ErrorClass):
		return errorStyle.Render("✗ " + el.TextContent())
	case el.HasClass("cards"):
		return r.cards(el)
	case el.HasClass("card"):
		return r.card(el)
	case el.HasClass("bar"):
		return r.bar(el)
	}
	switch el.Tag {
	case "header":
		return r.header(el)
	case "nav":
		return r.nav(el)
	case "table":
		return r.table(el)
	case "h1":
		return titleStyle.Render(el.TextContent())
	case "h2":
		return headingStyle.Render(el.TextContent())
	case "p":
		switch {
		case el.HasClass("muted"):
			return mutedStyle.Render(el.TextContent())
		case el.HasClass("warning"):
			return warningStyle.Render("! " + el.TextContent())
		}
		return el.TextContent()
	}
	return r.stack(el)
}

func (r renderer) stack(el *dom.Element) string {
	parts := make([]string, 0, len(el.Children())+1)
	if el.Text != "" {
		parts = append(parts, el.Text)
	}
	for _, c := range el.Children() {
		if s := r.block(c); s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r renderer) header(el *dom.Element) string {
	parts := make([]string, 0, 2)
	for _, c := range el.Children() {
		if c.HasClass("brand") {
			parts = append(parts, brandStyle.Render(c.TextContent()))
			continue
		}
		parts = append(parts, r.block(c))
	}
	return headerBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func (r renderer) nav(el *dom.Element) string {
	parts := make([]string, 0, len(el.Children()))
	for _, c := range el.Children() {
		if !c.HasAttr(nav.LinkAttr) {
			continue
		}
		style := inactiveLinkStyle
		if c.HasClass(nav.ActiveClass) {
			style = activeLinkStyle
		}
		if c == r.focus {
			style = style.Underline(true).Reverse(true)
		}
		parts = append(parts, style.Render(c.TextContent()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r renderer) cards(el *dom.Element) string {
	parts := make([]string, 0, len(el.Children()))
	for _, c := range el.Children() {
		parts = append(parts, r.block(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r renderer) card(el *dom.Element) string {
	lines := make([]string, 0, len(el.Children()))
	for _, c := range el.Children() {
		if c.Tag == "h3" {
			lines = append(lines, cardTitleStyle.Render(c.TextContent()))
			continue
		}
		lines = append(lines, c.TextContent())
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (r renderer) table(el *dom.Element) string {
	var headers []string
	for _, th := range el.QueryAll(dom.Tag("th")) {
		headers = append(headers, th.TextContent())
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	if body := el.Query(dom.Tag("tbody")); body != nil {
		for _, tr := range body.Children() {
			cells := make([]string, 0, len(headers))
			for _, td := range tr.Children() {
				cells = append(cells, td.TextContent())
			}
			t.Row(cells...)
		}
	}
	return t.Render()
}

func (r renderer) bar(el *dom.Element) string {
	var label, value string
	for _, c := range el.Children() {
		switch {
		case c.HasClass("bar__label"):
			label = c.TextContent()
		case c.HasClass("bar__value"):
			value = c.TextContent()
		}
	}
	w, _ := el.Data("width")
	n, _ := strconv.Atoi(w)
	return barLabelStyle.Render(label) + barStyle.Render(strings.Repeat("█", max(0, n))) + " " + value
}

// clip fits s into a width × height box.
func clip(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

// renderBar pads text into a full-width bar.
func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	if width <= 0 {
		return style.Render(line)
	}
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}
