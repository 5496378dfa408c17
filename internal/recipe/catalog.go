package recipe

import (
	"context"
	"sort"
	"strings"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// MethodSummary is a lightweight view of a method for listing.
type MethodSummary struct {
	Method  domain.Method
	Title   string
	Tagline string
	Ratio   float64
	Seconds float64
}

// Catalog exposes the built-in method profiles. Profiles are read-only so
// the catalog is safe for concurrent use.
type Catalog struct {
	log *logger.Logger
}

// NewCatalog creates a catalog over the built-in profiles.
func NewCatalog(log *logger.Logger) *Catalog {
	return &Catalog{log: log}
}

// List returns summaries of all methods in display order.
func (c *Catalog) List(ctx context.Context) ([]MethodSummary, error) {
	c.log.Debug("listing methods, count=%d", len(domain.Methods))

	out := make([]MethodSummary, 0, len(domain.Methods))
	for _, m := range domain.Methods {
		p, err := ProfileFor(m)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(p))
	}
	return out, nil
}

// Get returns the full profile of a method.
func (c *Catalog) Get(ctx context.Context, m domain.Method) (*Profile, error) {
	p, err := ProfileFor(m)
	if err != nil {
		c.log.Debug("method not found: %s", m)
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Search returns methods whose name, title or tagline contain the query.
func (c *Catalog) Search(ctx context.Context, query string) ([]MethodSummary, error) {
	q := strings.ToLower(query)
	c.log.Debug("searching methods for: %s", q)

	var out []MethodSummary
	for _, p := range profiles {
		if matches(p, q) {
			out = append(out, summarize(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

func matches(p *Profile, query string) bool {
	for _, field := range []string{p.Method.String(), p.Title, p.Short, p.Tagline, p.Footnote} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func summarize(p *Profile) MethodSummary {
	return MethodSummary{
		Method:  p.Method,
		Title:   p.Title,
		Tagline: p.Tagline,
		Ratio:   p.Ratio,
		Seconds: p.TotalTime(),
	}
}
