package prioritize

import (
	"context"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// fetched holds the provider results. Slices are indexed like the top
// items they were requested for.
type fetched struct {
	summary         string
	recommendations [][]assessment.Recommendation
	performance     []advisor.PerformanceEstimate
}

// fetch issues the executive summary call and one recommendation and one
// performance call per role concurrently. A failed call is replaced by
// its fallback, so fetch never fails.
func (e *Engine) fetch(ctx context.Context, log logrus.FieldLogger, summary advisor.SummaryRequest, roles []advisor.RoleContext) fetched {
	out := fetched{
		recommendations: make([][]assessment.Recommendation, len(roles)),
		performance:     make([]advisor.PerformanceEstimate, len(roles)),
	}

	var g errgroup.Group
	g.Go(func() error {
		cctx, cancel := e.callContext(ctx)
		defer cancel()
		text, err := e.provider.ExecutiveSummary(cctx, summary)
		if err != nil {
			e.fallback(log, advisor.OpExecutiveSummary, "", err)
			text = advisor.FallbackExecutiveSummary(summary)
		}
		out.summary = text
		return nil
	})
	for i, rc := range roles {
		g.Go(func() error {
			cctx, cancel := e.callContext(ctx)
			defer cancel()
			recs, err := e.provider.CapabilityRecommendations(cctx, rc)
			if err != nil {
				e.fallback(log, advisor.OpCapabilities, rc.Role.Title, err)
				recs = advisor.FallbackCapabilities(rc.Role)
			}
			out.recommendations[i] = recs
			return nil
		})
		g.Go(func() error {
			cctx, cancel := e.callContext(ctx)
			defer cancel()
			est, err := e.provider.PerformanceImpact(cctx, rc)
			if err != nil {
				e.fallback(log, advisor.OpPerformanceImpact, rc.Role.Title, err)
				est = advisor.FallbackPerformanceImpact(rc.Role)
			}
			out.performance[i] = est
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Engine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.callTimeout)
}

func (e *Engine) fallback(log logrus.FieldLogger, op, role string, err error) {
	e.metrics.Fallback(op)
	entry := log.WithField("op", op).WithError(err)
	if role != "" {
		entry = entry.WithField("role", role)
	}
	entry.Warn("provider call failed, using fallback")
}
