package incident

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/logtriage/internal/engine/compactor"
	"github.com/crimson-sun/logtriage/internal/model"
)

// TimeLayout is how summary texts render timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Config controls ranking and summary rendering.
type Config struct {
	PreviewLen int               // rune bound for ranked message previews (default 120)
	Mode       model.SummaryMode // human or technical phrasing (default human)
	Top        int               // ranked rows to keep, 0 = all
}

// Aggregator ranks and summarizes the incidents held by an Index.
type Aggregator struct {
	cfg Config
}

// New creates an Aggregator with the given config.
func New(cfg Config) *Aggregator {
	if cfg.PreviewLen <= 0 {
		cfg.PreviewLen = compactor.PreviewLen
	}
	if cfg.Mode == "" {
		cfg.Mode = model.SummaryHuman
	}
	return &Aggregator{cfg: cfg}
}

// Rank orders incident types by frequency, then by most recent occurrence,
// both descending. Ties on both keep first-occurrence order. Messages are
// cut to the preview length here and nowhere else; grouping always used
// the full text.
func (a *Aggregator) Rank(ix *Index) []model.RankedIncident {
	ranked := make([]model.RankedIncident, 0, ix.Len())
	for _, key := range ix.order {
		_, last := ix.span(key)
		ranked = append(ranked, model.RankedIncident{
			Service:   key.Service,
			Message:   compactor.Preview(key.Message, a.cfg.PreviewLen),
			Frequency: ix.Count(key),
			LastSeen:  last,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].LastSeen.After(ranked[j].LastSeen)
	})

	if a.cfg.Top > 0 && len(ranked) > a.cfg.Top {
		ranked = ranked[:a.cfg.Top]
	}
	return ranked
}

// Summaries describes every incident type seen more than once, in
// first-occurrence order.
func (a *Aggregator) Summaries(ix *Index) []model.IncidentSummary {
	out := make([]model.IncidentSummary, 0)
	for _, key := range ix.order {
		count := ix.Count(key)
		if count <= 1 {
			continue
		}
		first, last := ix.span(key)
		s := model.IncidentSummary{
			Service:   key.Service,
			Message:   key.Message,
			Count:     count,
			StartTime: first,
			EndTime:   last,
		}
		s.Text = Render(s, a.cfg.Mode)
		out = append(out, s)
	}
	return out
}

// Render phrases a summary in the requested mode.
func Render(s model.IncidentSummary, mode model.SummaryMode) string {
	start := s.StartTime.Format(TimeLayout)
	end := s.EndTime.Format(TimeLayout)
	if mode == model.SummaryTechnical {
		return fmt.Sprintf("%d occurrences in %s between %s and %s: %s",
			s.Count, s.Service, start, end, s.Message)
	}
	return fmt.Sprintf("There were %d similar issues in the %s service between %s and %s.",
		s.Count, s.Service, start, end)
}
