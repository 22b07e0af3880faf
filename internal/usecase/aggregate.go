package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/pipewise/pipewise/internal/entity"
)

type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Duration() time.Duration {
	return w.To.Sub(w.From)
}

// Prior returns the equal-length window immediately preceding this one,
// used for trend deltas.
func (w Window) Prior() Window {
	return Window{From: w.From.Add(-w.Duration()), To: w.From}
}

type Filters struct {
	Source   string `json:"source,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`
	Industry string `json:"industry,omitempty"`
}

type StatusBreakdown struct {
	Count      int   `json:"count"`
	ValueCents int64 `json:"value_cents"`
}

type TrendDeltas struct {
	Leads          int     `json:"leads"`
	Converted      int     `json:"converted"`
	ValueCents     int64   `json:"value_cents"`
	ConversionRate float64 `json:"conversion_rate"`
}

type PipelineSummary struct {
	Window         Window                     `json:"window"`
	Filters        Filters                    `json:"filters"`
	TotalLeads     int                        `json:"total_leads"`
	ByStatus       map[string]StatusBreakdown `json:"by_status"`
	BySource       map[string]int             `json:"by_source"`
	ByOwner        map[string]int             `json:"by_owner"`
	PipelineCents  int64                      `json:"pipeline_cents"`
	ConversionRate float64                    `json:"conversion_rate"`
	TrendDeltas    TrendDeltas                `json:"trend_deltas"`
}

// Aggregate is a pure function over a lead snapshot: no I/O, no clock, no
// mutation of its input. Identical snapshot, window and filters always
// produce identical output.
func Aggregate(snapshot []entity.Lead, window Window, filters Filters) PipelineSummary {
	summary := PipelineSummary{
		Window:   window,
		Filters:  filters,
		ByStatus: make(map[string]StatusBreakdown),
		BySource: make(map[string]int),
		ByOwner:  make(map[string]int),
	}

	for _, lead := range snapshot {
		if !inWindow(lead.CreatedAt, window) || !matches(lead, filters) {
			continue
		}

		summary.TotalLeads++

		breakdown := summary.ByStatus[lead.Status]
		breakdown.Count++
		breakdown.ValueCents += lead.BudgetCents
		summary.ByStatus[lead.Status] = breakdown

		summary.BySource[lead.Source]++
		summary.ByOwner[lead.OwnerID]++

		if lead.Status != entity.StatusLost {
			summary.PipelineCents += lead.BudgetCents
		}
	}

	summary.ConversionRate = conversionRate(summary.ByStatus)
	return summary
}

// conversionRate = converted / (converted + lost + qualified-outstanding).
// Leads still early in the pipeline (NEW, CONTACTED) do not count against
// the rate.
func conversionRate(byStatus map[string]StatusBreakdown) float64 {
	converted := byStatus[entity.StatusConverted].Count
	decided := converted + byStatus[entity.StatusLost].Count + byStatus[entity.StatusQualified].Count
	if decided == 0 {
		return 0
	}
	return float64(converted) / float64(decided)
}

func inWindow(t time.Time, w Window) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

func matches(lead entity.Lead, f Filters) bool {
	if f.Source != "" && lead.Source != f.Source {
		return false
	}
	if f.OwnerID != "" && lead.OwnerID != f.OwnerID {
		return false
	}
	if f.Industry != "" && lead.Industry != f.Industry {
		return false
	}
	return true
}

// TopSources lists source channels by descending lead count, ties broken by
// name so the output is stable. Feeds the dashboard charts and the report
// prompt.
func (s PipelineSummary) TopSources() []string {
	sources := make([]string, 0, len(s.BySource))
	for source := range s.BySource {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool {
		if s.BySource[sources[i]] != s.BySource[sources[j]] {
			return s.BySource[sources[i]] > s.BySource[sources[j]]
		}
		return sources[i] < sources[j]
	})
	return sources
}

// DashboardUseCase loads one snapshot covering the current and prior windows
// and computes both aggregates from it, so the trend deltas are consistent
// with the headline numbers.
type DashboardUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewDashboardUseCase(leads entity.LeadRepositoryInterface) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads}
}

func (uc *DashboardUseCase) Summary(ctx context.Context, window Window, filters Filters) (*PipelineSummary, error) {
	if !window.From.Before(window.To) {
		return nil, &DomainError{Code: CodeValidation, Message: "window from must be before to"}
	}

	prior := window.Prior()
	snapshot, err := uc.Leads.CreatedBetween(ctx, prior.From, window.To)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDependencyUnavailable, Message: "failed to load lead snapshot: " + err.Error()}
	}

	current := Aggregate(snapshot, window, filters)
	previous := Aggregate(snapshot, prior, filters)

	current.TrendDeltas = TrendDeltas{
		Leads:          current.TotalLeads - previous.TotalLeads,
		Converted:      current.ByStatus[entity.StatusConverted].Count - previous.ByStatus[entity.StatusConverted].Count,
		ValueCents:     current.PipelineCents - previous.PipelineCents,
		ConversionRate: current.ConversionRate - previous.ConversionRate,
	}

	return &current, nil
}
