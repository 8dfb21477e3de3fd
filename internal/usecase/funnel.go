package usecase

import (
	"fmt"
	"strings"

	"github.com/ParikhVedant/pare/internal/domain"
)

// Stage is one step of the capture funnel: first contact, then each required
// field in order, then a saved lead.
type Stage string

const (
	StageIntro     Stage = "intro"
	StageLeadSaved Stage = "lead_saved"
)

type FunnelRepository interface {
	Hit(stage Stage, sessionID string) error
	Counts() map[Stage]int
}

// Funnel aggregates how far sessions get through lead capture.
type Funnel struct {
	repo  FunnelRepository
	order []Stage
}

func NewFunnel(repo FunnelRepository, fields []domain.FieldDescriptor) *Funnel {
	if len(fields) == 0 {
		fields = domain.RequiredFields
	}
	order := make([]Stage, 0, len(fields)+2)
	order = append(order, StageIntro)
	for _, f := range fields {
		order = append(order, Stage(f.Name))
	}
	order = append(order, StageLeadSaved)
	return &Funnel{repo: repo, order: order}
}

func (f *Funnel) Reach(sessionID string, stage Stage) {
	if stage == "" {
		return
	}
	_ = f.repo.Hit(stage, sessionID)
}

// Summary renders a text funnel with drop-off percentages per stage.
func (f *Funnel) Summary() string {
	counts := f.repo.Counts()
	if len(counts) == 0 {
		return "No funnel data yet"
	}
	// base is the first stage count
	var base int
	if len(f.order) > 0 {
		base = counts[f.order[0]]
	}
	if base == 0 {
		for _, s := range f.order {
			if counts[s] > base {
				base = counts[s]
			}
		}
	}
	var prev int
	var b strings.Builder
	b.WriteString("Capture funnel by stage:\n")
	for i, s := range f.order {
		c := counts[s]
		relBase := percent(c, base)
		relPrev := 0
		if i == 0 {
			relPrev = 100
		} else if prev > 0 {
			relPrev = percent(c, prev)
		}
		bar := bar20(c, base)
		fmt.Fprintf(&b, "- %s: %d | %3d%% of base | %3d%% of prev %s\n", stageLabel(s), c, relBase, relPrev, bar)
		prev = c
	}
	return b.String()
}

// GraphData returns labels and values in stage order for chart rendering.
func (f *Funnel) GraphData() ([]string, []int) {
	counts := f.repo.Counts()
	labels := make([]string, 0, len(f.order))
	values := make([]int, 0, len(f.order))
	for _, s := range f.order {
		labels = append(labels, stageLabel(s))
		values = append(values, counts[s])
	}
	return labels, values
}

func percent(a, b int) int {
	if b <= 0 {
		return 0
	}
	return int((100 * a) / b)
}

func bar20(val, max int) string {
	if max <= 0 {
		return ""
	}
	filled := (20 * val) / max
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

func stageLabel(s Stage) string {
	switch s {
	case StageIntro:
		return "First contact"
	case "location":
		return "Location"
	case "requirement_type":
		return "Requirement"
	case "quantity":
		return "Quantity"
	case StageLeadSaved:
		return "Lead"
	default:
		return string(s)
	}
}
