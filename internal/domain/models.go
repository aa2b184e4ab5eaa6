package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Category is one of the four entity kinds the search overlay can surface
type Category string

const (
	CategoryLead        Category = "lead"
	CategoryContact     Category = "contact"
	CategoryCompany     Category = "company"
	CategoryOpportunity Category = "opportunity"
)

// Categories lists every category in flattening order
var Categories = []Category{
	CategoryLead,
	CategoryContact,
	CategoryCompany,
	CategoryOpportunity,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryLead, CategoryContact, CategoryCompany, CategoryOpportunity:
		return true
	}
	return false
}

// Label returns the display label for a category
func (c Category) Label() string {
	switch c {
	case CategoryLead:
		return "Lead"
	case CategoryContact:
		return "Contact"
	case CategoryCompany:
		return "Company"
	case CategoryOpportunity:
		return "Opportunity"
	default:
		return string(c)
	}
}

// PluralLabel returns the section heading used when listing a category
func (c Category) PluralLabel() string {
	switch c {
	case CategoryCompany:
		return "Companies"
	case CategoryOpportunity:
		return "Opportunities"
	default:
		return c.Label() + "s"
	}
}

// ResultItem is a normalized search hit
type ResultItem struct {
	ID        string
	Name      string
	Subtitles []string // at most two secondary fields
}

// ResultSet holds one provider response, grouped by category.
// It is replaced wholesale on every successful response.
type ResultSet struct {
	Leads         []ResultItem
	Contacts      []ResultItem
	Companies     []ResultItem
	Opportunities []ResultItem
}

// Items returns the list for a category
func (rs *ResultSet) Items(c Category) []ResultItem {
	if rs == nil {
		return nil
	}
	switch c {
	case CategoryLead:
		return rs.Leads
	case CategoryContact:
		return rs.Contacts
	case CategoryCompany:
		return rs.Companies
	case CategoryOpportunity:
		return rs.Opportunities
	}
	return nil
}

// Len returns the total number of items across categories
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Leads) + len(rs.Contacts) + len(rs.Companies) + len(rs.Opportunities)
}

// FlatEntry is a result item tagged with its category
type FlatEntry struct {
	Category Category
	Item     ResultItem
}

// RecentSelection is a previously chosen search result
type RecentSelection struct {
	Query     string    `json:"query"`
	Category  Category  `json:"category"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// RouteTarget is the navigation instruction emitted for a selection
type RouteTarget struct {
	Category Category
	ID       string
}

// Path returns the CRM detail route for the target
func (r RouteTarget) Path() string {
	id := url.PathEscape(r.ID)
	switch r.Category {
	case CategoryLead:
		return "/crm/leads/" + id
	case CategoryContact:
		return "/crm/contacts/" + id
	case CategoryCompany:
		return "/crm/companies/" + id
	case CategoryOpportunity:
		return "/crm/opportunities/" + id
	}
	return ""
}

func (r RouteTarget) String() string {
	return fmt.Sprintf("%s %s", r.Category, r.ID)
}
