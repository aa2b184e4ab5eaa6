package views

import (
	"github.com/charmbracelet/lipgloss"

	"crmsearch/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Box           lipgloss.Style
	Prompt        lipgloss.Style
	Divider       lipgloss.Style
	Header        lipgloss.Style
	Item          lipgloss.Style
	Selected      lipgloss.Style
	SelectedBg    lipgloss.Style
	Subtitle      lipgloss.Style
	Dim           lipgloss.Style
	Hint          lipgloss.Style
	StatusLoading lipgloss.Style
	Counter       lipgloss.Style
	Route         lipgloss.Style
	StatusWarning lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Item:          lipgloss.NewStyle(),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectedBg:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Subtitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Counter:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Route:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
	}
}

// CategoryColor returns the accent color for a category
func CategoryColor(c domain.Category) string {
	switch c {
	case domain.CategoryLead:
		return "33" // blue
	case domain.CategoryContact:
		return "78" // green
	case domain.CategoryCompany:
		return "141" // purple
	case domain.CategoryOpportunity:
		return "214" // orange
	default:
		return "245"
	}
}

// CategoryBadge renders a short colored tag for a category
func (s *Styles) CategoryBadge(c domain.Category) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(CategoryColor(c))).Render(c.Label())
}
