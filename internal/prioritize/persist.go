package prioritize

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultImpactScore = 50.0
	defaultLinkLevel   = "Medium"
	uncategorized      = "Uncategorized"
	saveErrorSuffix    = " (Error saving details)"
)

// persistCapabilities stores every recommendation of every top item: the
// catalog entry, its impact on each selected role, and the link to the
// assessment. Each storage call holds one slot of the engine's write
// limit. A capability whose save fails is still listed, with a marked
// description. The returned suggestions follow the order of top and recs.
func (e *Engine) persistCapabilities(ctx context.Context, log logrus.FieldLogger, assessmentID int64, selectedRoles []int64, top []PrioritizedItem, recs [][]assessment.Recommendation) ([]RoleSuggestions, error) {
	out := make([]RoleSuggestions, len(top))
	var g errgroup.Group
	for i, item := range top {
		out[i] = RoleSuggestions{
			RoleID:       item.ID,
			RoleTitle:    item.Title,
			Capabilities: make([]CapabilitySummary, len(recs[i])),
		}
		for j, rec := range recs[i] {
			g.Go(func() error {
				summary, err := e.saveCapability(ctx, log, assessmentID, selectedRoles, i, rec)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					e.metrics.WriteFailed()
					log.WithField("capability", rec.CapabilityName).WithError(err).Error("saving capability recommendation")
					summary = CapabilitySummary{
						Name:        orDefault(rec.CapabilityName, "Unknown Capability"),
						Description: rec.CapabilityDescription + saveErrorSuffix,
					}
				}
				out[i].Capabilities[j] = summary
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) saveCapability(ctx context.Context, log logrus.FieldLogger, assessmentID int64, selectedRoles []int64, index int, rec assessment.Recommendation) (CapabilitySummary, error) {
	draft := rec.Draft()
	draft.Name = orDefault(draft.Name, fmt.Sprintf("Unknown Capability %d", index))
	draft.Category = orDefault(draft.Category, uncategorized)

	var capability *assessment.Capability
	err := e.write(ctx, func() error {
		var err error
		capability, err = e.store.FindOrCreateCapability(ctx, draft)
		return err
	})
	if err != nil {
		return CapabilitySummary{}, fmt.Errorf("find or create %q: %w", draft.Name, err)
	}
	if capability == nil || capability.ID == 0 {
		return CapabilitySummary{}, fmt.Errorf("find or create %q: no capability returned", draft.Name)
	}

	if len(selectedRoles) > 0 {
		impact := defaultImpactScore
		if v := rec.ImpactScore.Float(); v != nil {
			impact = *v
		}
		impacts := make([]assessment.RoleImpact, len(selectedRoles))
		for k, roleID := range selectedRoles {
			impacts[k] = assessment.RoleImpact{CapabilityID: capability.ID, RoleID: roleID, ImpactScore: impact}
		}
		err := e.write(ctx, func() error {
			return e.store.MapCapabilityToRoles(ctx, capability.ID, impacts)
		})
		if err != nil {
			if ctx.Err() != nil {
				return CapabilitySummary{}, ctx.Err()
			}
			log.WithFields(logrus.Fields{"capability_id": capability.ID, "roles": len(impacts)}).WithError(err).Warn("mapping capability to roles")
		}
	}

	link := assessment.AssessmentCapability{
		AssessmentID:         assessmentID,
		CapabilityID:         capability.ID,
		ValueScore:           rec.ValueScore.Float(),
		FeasibilityScore:     rec.FeasibilityScore.Float(),
		ImpactScore:          rec.ImpactScore.Float(),
		EaseScore:            rec.EaseScore.Float(),
		Priority:             orDefault(rec.Priority, defaultLinkLevel),
		Rank:                 rec.Rank,
		ImplementationEffort: orDefault(rec.ImplementationEffort, defaultLinkLevel),
		BusinessValue:        orDefault(rec.BusinessValue, defaultLinkLevel),
		AssessmentNotes:      rec.AssessmentNotes,
	}
	err = e.write(ctx, func() error {
		_, err := e.store.CreateAssessmentCapability(ctx, link)
		return err
	})
	if err != nil {
		return CapabilitySummary{}, fmt.Errorf("linking capability %d: %w", capability.ID, err)
	}
	return CapabilitySummary{Name: capability.Name, Description: capability.Description}, nil
}

// write runs fn while holding one slot of the write limit.
func (e *Engine) write(ctx context.Context, fn func() error) error {
	if err := e.writes.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.writes.Release(1)
	e.metrics.WriteStarted()
	defer e.metrics.WriteFinished()
	return fn()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
