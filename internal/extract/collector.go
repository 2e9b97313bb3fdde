package extract

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/promptbank/internal/classify"
	"github.com/fyrsmithlabs/promptbank/internal/session"
)

// DefaultMinAnalysisLength is the quality bar for prompts fed to the
// model. Distinct from the extractor's validity floor: short-but-valid
// prompts survive extraction yet carry too little signal to analyze.
const DefaultMinAnalysisLength = 10

// Collector aggregates prompts across all sessions under a projects root.
type Collector struct {
	logger *zap.Logger
}

// NewCollector creates a Collector. A nil logger is replaced with a nop.
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// ExtractAll walks the session files under root and returns one bundle
// per session that produced at least one prompt. A limit > 0 caps the
// number of bundles; the walk stops as soon as the cap is reached.
func (c *Collector) ExtractAll(root string, limit int, includeAgents bool) ([]SessionBundle, error) {
	files, err := session.Discover(root, includeAgents)
	if err != nil {
		return nil, err
	}

	var bundles []SessionBundle
	for _, f := range files {
		if limit > 0 && len(bundles) >= limit {
			break
		}

		prompts := extractFromFile(f.Path)
		if len(prompts) == 0 {
			c.logger.Debug("skipping session with no prompts",
				zap.String("session_id", f.ID),
				zap.String("project", f.Project))
			continue
		}

		bundles = append(bundles, SessionBundle{
			SessionID:   f.ID,
			Project:     f.Project,
			SessionPath: f.Path,
			MTime:       f.MTime,
			Prompts:     prompts,
		})
	}

	c.logger.Info("extracted prompt corpus",
		zap.String("root", root),
		zap.Int("sessions", len(bundles)))
	return bundles, nil
}

// CollectForAnalysis flattens the corpus into analysis prompts,
// dropping anything shorter than minLength and discarding session
// grouping. Order follows the session walk, then entry order within
// each session.
func (c *Collector) CollectForAnalysis(root string, limit, minLength int) ([]AnalysisPrompt, error) {
	if minLength <= 0 {
		minLength = DefaultMinAnalysisLength
	}

	bundles, err := c.ExtractAll(root, limit, false)
	if err != nil {
		return nil, err
	}

	var prompts []AnalysisPrompt
	for _, bundle := range bundles {
		for _, p := range bundle.Prompts {
			if len(p.Text) < minLength {
				continue
			}
			prompts = append(prompts, AnalysisPrompt{
				Text:      p.Text,
				Type:      p.Type,
				Project:   bundle.Project,
				SessionID: bundle.SessionID,
			})
		}
	}

	return prompts, nil
}

// Stats summarizes the corpus: session and prompt counts, prompts per
// type, and the distinct projects seen.
func (c *Collector) Stats(root string, limit int) (*CorpusStats, error) {
	bundles, err := c.ExtractAll(root, limit, false)
	if err != nil {
		return nil, err
	}

	stats := &CorpusStats{
		ByType: make(map[classify.PromptType]int),
	}
	projects := make(map[string]struct{})

	for _, bundle := range bundles {
		stats.TotalSessions++
		projects[bundle.Project] = struct{}{}
		for _, p := range bundle.Prompts {
			stats.TotalPrompts++
			stats.ByType[p.Type]++
		}
	}

	for name := range projects {
		stats.Projects = append(stats.Projects, name)
	}
	sort.Strings(stats.Projects)

	return stats, nil
}
