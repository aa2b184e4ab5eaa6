// Package backend is a small in-memory CRM serving the quick-search endpoint.
// It stands in for the real CRM during development and end-to-end tests.
package backend

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Lead struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Industry string `json:"industry,omitempty"`
	City     string `json:"city,omitempty"`
}

type Opportunity struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Stage  string  `json:"stage,omitempty"`
}

// Dataset holds every searchable record, in the order searches return them
type Dataset struct {
	Leads         []Lead        `json:"leads"`
	Contacts      []Contact     `json:"contacts"`
	Companies     []Company     `json:"companies"`
	Opportunities []Opportunity `json:"opportunities"`
}

// QuickSearchResponse is the body of GET /api/crm/search/quick
type QuickSearchResponse struct {
	Leads         []Lead        `json:"leads"`
	Contacts      []Contact     `json:"contacts"`
	Companies     []Company     `json:"companies"`
	Opportunities []Opportunity `json:"opportunities"`
}

// LoadDataset reads a seed file in the same shape as Dataset
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &ds, nil
}

// SampleDataset returns the built-in demo data
func SampleDataset() *Dataset {
	return &Dataset{
		Leads: []Lead{
			{ID: "l1", Name: "David Cohen", Email: "david.cohen@example.com", Phone: "+33 6 12 34 56 78"},
			{ID: "l2", Name: "Sarah Martin", Email: "sarah.martin@example.com"},
			{ID: "l3", Email: "anonymous.lead@example.com", Phone: "+33 7 00 00 00 00"},
		},
		Contacts: []Contact{
			{ID: "c1", Name: "David Levi", Email: "d.levi@acme.fr", CompanyName: "Acme"},
			{ID: "c2", Name: "Julie Bernard", Email: "julie@globex.com", CompanyName: "Globex"},
			{ID: "c3", Name: "Marc Dubois", Phone: "+33 1 23 45 67 89"},
		},
		Companies: []Company{
			{ID: "co1", Name: "Acme", Industry: "Manufacturing", City: "Lyon"},
			{ID: "co2", Name: "Globex", Industry: "Software", City: "Paris"},
			{ID: "co3", Name: "Davidson Consulting", Industry: "Consulting", City: "Nantes"},
		},
		Opportunities: []Opportunity{
			{ID: "o1", Name: "Acme renewal", Amount: 15000, Stage: "negotiation"},
			{ID: "o2", Name: "Globex expansion", Amount: 42500.5, Stage: "proposal"},
			{ID: "o3", Name: "David Cohen onboarding", Amount: 1200, Stage: "won"},
		},
	}
}

// Search matches q case-insensitively against each category and caps every
// category at limit.
func (ds *Dataset) Search(q string, limit int) QuickSearchResponse {
	q = strings.ToLower(strings.TrimSpace(q))
	resp := QuickSearchResponse{
		Leads:         []Lead{},
		Contacts:      []Contact{},
		Companies:     []Company{},
		Opportunities: []Opportunity{},
	}
	if q == "" {
		return resp
	}

	for _, l := range ds.Leads {
		if len(resp.Leads) < limit && matches(q, l.Name, l.Email, l.Phone) {
			resp.Leads = append(resp.Leads, l)
		}
	}
	for _, c := range ds.Contacts {
		if len(resp.Contacts) < limit && matches(q, c.Name, c.Email, c.CompanyName) {
			resp.Contacts = append(resp.Contacts, c)
		}
	}
	for _, c := range ds.Companies {
		if len(resp.Companies) < limit && matches(q, c.Name, c.Industry, c.City) {
			resp.Companies = append(resp.Companies, c)
		}
	}
	for _, o := range ds.Opportunities {
		if len(resp.Opportunities) < limit && matches(q, o.Name, o.Stage) {
			resp.Opportunities = append(resp.Opportunities, o)
		}
	}
	return resp
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
