package prioritize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/metrics"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// ErrAssessmentNotFound is returned by Run when the assessment does not exist.
var ErrAssessmentNotFound = errors.New("assessment not found")

const (
	defaultTopN             = 3
	defaultWriteConcurrency = 4
)

// Storage is the persistence the engine reads and writes.
// GetAssessment returns nil, nil when the assessment does not exist.
type Storage interface {
	GetAssessment(ctx context.Context, id int64) (*assessment.Assessment, error)
	ListRoles(ctx context.Context) ([]assessment.Role, error)
	FindOrCreateCapability(ctx context.Context, d assessment.CapabilityDraft) (*assessment.Capability, error)
	MapCapabilityToRoles(ctx context.Context, capabilityID int64, impacts []assessment.RoleImpact) error
	CreateAssessmentCapability(ctx context.Context, ac assessment.AssessmentCapability) (int64, error)
	CreateReport(ctx context.Context, r *Report) (int64, error)
	UpdateAssessmentStatus(ctx context.Context, id int64, status assessment.Status) error
}

// Provider produces the generated parts of a report. Any error is
// replaced by the matching advisor fallback.
type Provider interface {
	ExecutiveSummary(ctx context.Context, req advisor.SummaryRequest) (string, error)
	CapabilityRecommendations(ctx context.Context, rc advisor.RoleContext) ([]assessment.Recommendation, error)
	PerformanceImpact(ctx context.Context, rc advisor.RoleContext) (advisor.PerformanceEstimate, error)
}

// Scorer computes the organization-level adoption score.
type Scorer interface {
	Calculate(ctx context.Context, req scoring.AdoptionRequest) scoring.AdoptionScore
}

// Engine runs the prioritization pipeline. One Engine may serve
// concurrent runs; they share the write limit.
type Engine struct {
	store       Storage
	provider    Provider
	scorer      Scorer
	log         logrus.FieldLogger
	metrics     *metrics.Metrics
	topN        int
	writes      *semaphore.Weighted
	callTimeout time.Duration
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics records provider fallbacks and capability writes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTopN sets how many top items get recommendations.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithWriteConcurrency bounds the capability writes in flight.
func WithWriteConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.writes = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithCallTimeout bounds every provider call. Zero means no bound.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) { e.callTimeout = d }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine.
func New(store Storage, provider Provider, scorer Scorer, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		provider: provider,
		scorer:   scorer,
		topN:     defaultTopN,
		writes:   semaphore.NewWeighted(defaultWriteConcurrency),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		e.log = l
	}
	return e
}

// GenerateOptions tune one run.
type GenerateOptions struct {
	// NoCache requests a fresh executive summary.
	NoCache bool
}

// Run loads the assessment, generates its report, stores the report and
// marks the assessment completed.
func (e *Engine) Run(ctx context.Context, assessmentID int64, opts GenerateOptions) (*Report, error) {
	a, err := e.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("loading assessment %d: %w", assessmentID, err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %d", ErrAssessmentNotFound, assessmentID)
	}

	report, err := e.Generate(ctx, a, opts)
	if err != nil {
		return nil, err
	}

	id, err := e.store.CreateReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("storing report for assessment %d: %w", assessmentID, err)
	}
	report.ID = id

	if err := e.store.UpdateAssessmentStatus(ctx, assessmentID, assessment.StatusCompleted); err != nil {
		e.log.WithField("assessment_id", assessmentID).WithError(err).Warn("report stored but assessment status not updated")
	}
	e.metrics.ReportGenerated()
	return report, nil
}

// Generate runs the pipeline for a and returns the report without storing
// it. Recommended capabilities are still persisted. Only context
// cancellation aborts the run; every other failure degrades the affected
// part of the report.
func (e *Engine) Generate(ctx context.Context, a *assessment.Assessment, opts GenerateOptions) (*Report, error) {
	runID := uuid.NewString()
	log := e.log.WithFields(logrus.Fields{"assessment_id": a.ID, "run_id": runID})
	steps := a.StepData

	items, directory := e.scoreRoles(ctx, log, steps)
	heatmap := NewHeatmap()
	for _, item := range items {
		heatmap.Place(item)
	}
	SortItems(items)
	log.WithField("items", len(items)).Debug("roles prioritized")

	top := items
	if len(top) > e.topN {
		top = top[:e.topN]
	}
	contexts := make([]advisor.RoleContext, len(top))
	for i, item := range top {
		contexts[i] = roleContext(item, directory, steps)
	}

	fetched := e.fetch(ctx, log, summaryRequest(a, top, opts), contexts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	suggestions, err := e.persistCapabilities(ctx, log, a.ID, steps.SelectedRoleIDs(), top, fetched.recommendations)
	if err != nil {
		return nil, err
	}

	var inputs assessment.AdoptionScoreInputs
	if steps.AIAdoptionScoreInputs != nil {
		inputs = *steps.AIAdoptionScoreInputs
	}
	score := e.scorer.Calculate(ctx, scoring.AdoptionRequest{
		Inputs:           inputs,
		Industry:         a.Industry,
		CompanyStage:     a.CompanyStage,
		IndustryMaturity: a.IndustryMaturity,
		OrganizationID:   a.OrganizationID,
	})
	for i := range items {
		items[i].AIAdoptionScore = score.OverallScore
	}

	impact := PerformanceImpact{RoleImpacts: make([]RoleImpact, len(top))}
	for i, item := range top {
		est := fetched.performance[i]
		impact.RoleImpacts[i] = RoleImpact{RoleTitle: item.Title, Metrics: est.Metrics}
		impact.EstimatedROI += est.EstimatedAnnualROI
	}

	return &Report{
		AssessmentID:       a.ID,
		RunID:              runID,
		GeneratedAt:        e.now().UTC(),
		ExecutiveSummary:   fetched.summary,
		PrioritizationData: PrioritizationData{Heatmap: heatmap, PrioritizedItems: items},
		AISuggestions:      suggestions,
		PerformanceImpact:  impact,
		AIAdoptionScore:    score,
		ROIDetails:         score.ROIDetails,
	}, nil
}

// scoreRoles resolves and scores the ranked roles and returns them with
// the role directory. Roles that cannot be resolved are skipped.
func (e *Engine) scoreRoles(ctx context.Context, log logrus.FieldLogger, steps assessment.WizardStepData) ([]PrioritizedItem, map[int64]assessment.Role) {
	ranked, unselected := steps.RankedRoles()
	for _, id := range unselected {
		log.WithField("role_id", id).Warn("prioritized role was not selected, skipping")
	}
	if len(ranked) == 0 {
		return []PrioritizedItem{}, nil
	}

	directory := make(map[int64]assessment.Role)
	roles, err := e.store.ListRoles(ctx)
	if err != nil {
		log.WithError(err).Warn("role directory unavailable, using inline role data")
	}
	for _, r := range roles {
		directory[r.ID] = r
	}

	dataQuality := DataQuality(steps.TechStack)
	items := make([]PrioritizedItem, 0, len(ranked))
	for _, ref := range ranked {
		title, department := ref.Title, ref.Department
		if r, ok := directory[ref.ID]; ok {
			title = r.Title
			department = r.Department
			if department == "" {
				department = fmt.Sprintf("Department %d", r.DepartmentID)
			}
		}
		if title == "" {
			log.WithField("role_id", ref.ID).Warn("selected role not found in directory, skipping")
			continue
		}
		pain, _ := steps.PainPointFor(ref.ID)
		items = append(items, ScoreItem(ref.ID, title, department, pain, dataQuality))
	}
	return items, directory
}

// roleContext builds the provider context for item, preferring the
// directory entry for the description and responsibilities.
func roleContext(item PrioritizedItem, directory map[int64]assessment.Role, steps assessment.WizardStepData) advisor.RoleContext {
	role, ok := directory[item.ID]
	if !ok {
		role = assessment.Role{ID: item.ID}
	}
	role.Title = item.Title
	role.Department = item.Department
	pain, _ := steps.PainPointFor(item.ID)
	return advisor.RoleContext{Role: role, PainPoint: pain}
}

func summaryRequest(a *assessment.Assessment, top []PrioritizedItem, opts GenerateOptions) advisor.SummaryRequest {
	req := advisor.SummaryRequest{
		AssessmentID: a.ID,
		Industry:     a.Industry,
		NoCache:      opts.NoCache,
	}
	if b := a.StepData.Basics; b != nil {
		req.CompanyName = b.CompanyName
		req.Goals = b.Goals
		if b.Industry != "" {
			req.Industry = b.Industry
		}
	}
	for _, item := range top {
		req.TopItems = append(req.TopItems, advisor.SummaryItem{
			Title:       item.Title,
			Department:  item.Department,
			Priority:    string(item.Priority),
			ValueScore:  item.ValueScore,
			EffortScore: item.EffortScore,
		})
	}
	return req
}
