package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"crmsearch/internal/domain"
	"crmsearch/internal/ui/services/results"
)

const (
	maxOverlayWidth = 72
	minOverlayWidth = 30
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Open           bool
	Query          string // raw input text
	InputView      string // rendered text input
	Loading        bool
	TooShort       bool
	MinLength      int
	HasResults     bool
	Sections       []results.Section
	Recents        []domain.RecentSelection
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	HelpView       string
	LastRoute      string
	StatusMessage  string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// OverlayWidth returns the inner width of the overlay for a terminal width
func OverlayWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	w := termWidth - 8
	if w > maxOverlayWidth {
		w = maxOverlayWidth
	}
	if w < minOverlayWidth {
		w = minOverlayWidth
	}
	return w
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if !state.Open {
		return r.renderClosed(state)
	}

	width := OverlayWidth(state.Width)
	lines := []string{r.renderInputLine(state, width), r.styles.Divider.Render(strings.Repeat("─", width))}
	lines = append(lines, r.renderBody(state, width)...)
	lines = append(lines, r.styles.Divider.Render(strings.Repeat("─", width)))
	lines = append(lines, r.renderFooter(state, width))

	box := r.styles.Box.Width(width + 2).Render(strings.Join(lines, "\n"))

	termWidth, termHeight := state.Width, state.Height
	if termWidth <= 0 || termHeight <= 0 {
		return box
	}
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().MarginTop(1).Render(box))
}

func (r *Renderer) renderInputLine(state ViewState, width int) string {
	prompt := r.styles.Prompt.Render("> ")
	right := ""
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		right = r.styles.StatusLoading.Render(spinner[frame] + " Searching")
	}

	line := prompt + state.InputView
	gap := width - lipgloss.Width(line) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return line
	}
	return line + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderBody(state ViewState, width int) []string {
	query := strings.TrimSpace(state.Query)

	switch {
	case query == "":
		return r.renderRecents(state, width)
	case state.TooShort:
		return []string{r.styles.Hint.Render(fmt.Sprintf("Type at least %d characters", state.MinLength))}
	case !state.HasResults:
		if state.Loading {
			return []string{r.styles.StatusLoading.Render("Searching…")}
		}
		return []string{""}
	case len(state.Sections) == 0:
		return []string{
			r.styles.Hint.Render(truncate(fmt.Sprintf("No results for %q", query), width)),
			r.styles.Dim.Render("Try a different search"),
		}
	}
	return r.renderSections(state, width)
}

func (r *Renderer) renderRecents(state ViewState, width int) []string {
	if len(state.Recents) == 0 {
		return []string{
			r.styles.Hint.Render("Start typing to search leads, contacts, companies and opportunities"),
			r.styles.Dim.Render("Press Ctrl+K at any time to search again"),
		}
	}

	lines := []string{r.styles.Header.Render("Recent searches")}
	for i, rec := range state.Recents {
		detail := rec.Category.Label()
		if rec.Query != "" {
			detail += fmt.Sprintf(" · %q", rec.Query)
		}
		lines = append(lines, r.renderEntry(rec.Name, detail, i == state.Cursor, width))
	}
	return lines
}

func (r *Renderer) renderSections(state ViewState, width int) []string {
	height := state.ViewportHeight
	if height <= 0 {
		height = 1 << 30
	}
	first, last := state.ViewportOffset, state.ViewportOffset+height-1

	var lines []string
	for _, sec := range state.Sections {
		secFirst, secLast := sec.Offset, sec.Offset+len(sec.Items)-1
		if secLast < first || secFirst > last {
			continue
		}
		header := fmt.Sprintf("%s (%d)", sec.Category.PluralLabel(), len(sec.Items))
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(CategoryColor(sec.Category))).
			Bold(true).
			Render(header))

		for i, item := range sec.Items {
			idx := sec.Offset + i
			if idx < first || idx > last {
				continue
			}
			lines = append(lines, r.renderEntry(item.Name, strings.Join(item.Subtitles, " • "), idx == state.Cursor, width))
		}
	}

	total := 0
	for _, sec := range state.Sections {
		total += len(sec.Items)
	}
	if first > 0 || last < total-1 {
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("%d-%d of %d", first+1, min(last+1, total), total)))
	}
	return lines
}

func (r *Renderer) renderEntry(name, detail string, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "› "
	}
	name, detail = joinFit(name, detail, width-2)

	if selected {
		line := padRight(marker+name+detailSep(detail)+detail, width)
		return r.styles.SelectedBg.Render(r.styles.Selected.Render(line))
	}

	out := marker + r.styles.Item.Render(name)
	if detail != "" {
		out += detailSep(detail) + r.styles.Subtitle.Render(detail)
	}
	return out
}

func detailSep(detail string) string {
	if detail == "" {
		return ""
	}
	return "  "
}

func (r *Renderer) renderFooter(state ViewState, width int) string {
	counter := ""
	if strings.TrimSpace(state.Query) != "" && state.HasResults {
		total := 0
		for _, sec := range state.Sections {
			total += len(sec.Items)
		}
		noun := "results"
		if total == 1 {
			noun = "result"
		}
		counter = r.styles.Counter.Render(fmt.Sprintf("%d %s", total, noun))
	}

	help := r.styles.Help.Render(state.HelpView)
	gap := width - lipgloss.Width(help) - lipgloss.Width(counter)
	if counter == "" || gap < 1 {
		if lipgloss.Width(help) > width {
			return counter
		}
		return help
	}
	return help + strings.Repeat(" ", gap) + counter
}

func (r *Renderer) renderClosed(state ViewState) string {
	content := &strings.Builder{}
	content.WriteString(r.styles.Title.Render("crmsearch"))
	content.WriteString("\n")

	if state.LastRoute != "" {
		content.WriteString("Opened ")
		content.WriteString(r.styles.Route.Render(state.LastRoute))
	} else {
		content.WriteString(r.styles.Dim.Render("Search closed."))
	}
	content.WriteString("\n")

	if state.StatusMessage != "" {
		content.WriteString(r.styles.StatusWarning.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpView))

	return lipgloss.NewStyle().Padding(1, 2).Render(content.String())
}
