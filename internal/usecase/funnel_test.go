package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeFunnelRepo struct {
	hits map[Stage]map[string]struct{}
}

func newFakeFunnelRepo() *fakeFunnelRepo {
	return &fakeFunnelRepo{hits: make(map[Stage]map[string]struct{})}
}

func (r *fakeFunnelRepo) Hit(stage Stage, sessionID string) error {
	m, ok := r.hits[stage]
	if !ok {
		m = make(map[string]struct{})
		r.hits[stage] = m
	}
	m[sessionID] = struct{}{}
	return nil
}

func (r *fakeFunnelRepo) Counts() map[Stage]int {
	out := make(map[Stage]int, len(r.hits))
	for s, set := range r.hits {
		out[s] = len(set)
	}
	return out
}

func TestFunnelOrder(t *testing.T) {
	f := NewFunnel(newFakeFunnelRepo(), nil)
	labels, values := f.GraphData()
	assert.Equal(t, []string{"First contact", "Location", "Requirement", "Quantity", "Lead"}, labels)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, values)
}

func TestFunnelCountsDistinctSessions(t *testing.T) {
	repo := newFakeFunnelRepo()
	f := NewFunnel(repo, nil)

	f.Reach("s1", StageIntro)
	f.Reach("s1", StageIntro)
	f.Reach("s2", StageIntro)
	f.Reach("s1", "location")
	f.Reach("s1", StageLeadSaved)
	f.Reach("", StageIntro) // ignored only when stage empty; empty id still counts
	f.Reach("s3", "")

	_, values := f.GraphData()
	assert.Equal(t, 3, values[0])
	assert.Equal(t, 1, values[1])
	assert.Equal(t, 1, values[4])
}

func TestFunnelSummary(t *testing.T) {
	repo := newFakeFunnelRepo()
	f := NewFunnel(repo, nil)
	assert.Equal(t, "No funnel data yet", f.Summary())

	f.Reach("s1", StageIntro)
	f.Reach("s2", StageIntro)
	f.Reach("s1", "location")
	out := f.Summary()
	assert.Contains(t, out, "Capture funnel by stage:")
	assert.Contains(t, out, "First contact: 2")
	assert.Contains(t, out, "Location: 1 |  50% of base")
}

func TestAssistantTracksFunnel(t *testing.T) {
	repo := newFakeFunnelRepo()
	funnel := NewFunnel(repo, nil)
	planner := &scriptPlanner{plans: []Plan{
		{Calls: []ToolCall{captureCall("location", "Mumbai")}},
	}}
	a := newTestAssistant(t, planner, WithFunnel(funnel))
	s := a.NewSession()

	_, err := a.Respond(context.Background(), s, "I'm in Mumbai")
	assert.NoError(t, err)

	counts := repo.Counts()
	assert.Equal(t, 1, counts[StageIntro])
	assert.Equal(t, 1, counts["location"])
	assert.Zero(t, counts[StageLeadSaved])
}
