package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crmsearch/internal/domain"
)

// UnnamedLabel is shown for items with neither a name nor an email
const UnnamedLabel = "Unnamed"

type rawItem map[string]any

type rawResponse struct {
	Leads         []rawItem `json:"leads"`
	Contacts      []rawItem `json:"contacts"`
	Companies     []rawItem `json:"companies"`
	Opportunities []rawItem `json:"opportunities"`
}

// Adapter turns raw backend items into ResultItems
type Adapter struct {
	printer  *message.Printer
	currency string
}

// NewAdapter creates an adapter formatting amounts for locale (a BCP 47 tag).
// An unparsable locale falls back to English.
func NewAdapter(locale, currency string) *Adapter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Adapter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// Decode parses a quick-search body. Missing categories are empty.
func (a *Adapter) Decode(data []byte) (*domain.ResultSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw rawResponse
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode quick search response: %w", err)
	}
	return a.adapt(&raw), nil
}

func (a *Adapter) adapt(raw *rawResponse) *domain.ResultSet {
	return &domain.ResultSet{
		Leads:         a.items(raw.Leads, a.leadSubtitles),
		Contacts:      a.items(raw.Contacts, a.contactSubtitles),
		Companies:     a.items(raw.Companies, a.companySubtitles),
		Opportunities: a.items(raw.Opportunities, a.opportunitySubtitles),
	}
}

func (a *Adapter) items(raw []rawItem, subtitles func(rawItem) []string) []domain.ResultItem {
	out := make([]domain.ResultItem, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		id := r.id()
		if id == "" {
			continue
		}
		out = append(out, domain.ResultItem{
			ID:        id,
			Name:      r.displayName(),
			Subtitles: subtitles(r),
		})
	}
	return out
}

func (a *Adapter) leadSubtitles(r rawItem) []string {
	return nonEmpty(r.str("email"), r.str("phone"))
}

func (a *Adapter) contactSubtitles(r rawItem) []string {
	if company := r.str("company_name"); company != "" {
		return nonEmpty(r.str("email"), company)
	}
	return nonEmpty(r.str("email"), r.str("phone"))
}

func (a *Adapter) companySubtitles(r rawItem) []string {
	return nonEmpty(r.str("industry"), r.str("city"))
}

func (a *Adapter) opportunitySubtitles(r rawItem) []string {
	return nonEmpty(a.formatAmount(r["amount"]), r.str("stage"))
}

// FormatAmount renders v with locale grouping and the configured currency
func (a *Adapter) FormatAmount(v float64) string {
	var s string
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		s = a.printer.Sprintf("%d", int64(v))
	} else {
		s = a.printer.Sprintf("%.2f", v)
	}
	if a.currency == "" {
		return s
	}
	return s + " " + a.currency
}

func (a *Adapter) formatAmount(v any) string {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return ""
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return ""
		}
		f = parsed
	default:
		return ""
	}
	// zero amounts are not shown
	if f == 0 {
		return ""
	}
	return a.FormatAmount(f)
}

// id prefers the document id and falls back to id; numbers are accepted
func (r rawItem) id() string {
	if id := r.str("_id"); id != "" {
		return id
	}
	return r.str("id")
}

func (r rawItem) displayName() string {
	if name := r.str("name"); name != "" {
		return name
	}
	if email := r.str("email"); email != "" {
		return email
	}
	return UnnamedLabel
}

func (r rawItem) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
