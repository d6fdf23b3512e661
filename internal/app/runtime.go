package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/config"
	"github.com/blackwell-systems/aiready/internal/logging"
	"github.com/blackwell-systems/aiready/internal/metrics"
	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/rationalize"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/blackwell-systems/aiready/internal/store"
)

// runtime holds the dependencies shared by commands that touch the
// database.
type runtime struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *store.DB
	metrics *metrics.Metrics
}

func openRuntime() (*runtime, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	db, err := store.Open(cfg.DBPath, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	log.WithField("db_path", cfg.DBPath).Debug("database opened")
	return &runtime{cfg: cfg, log: log, db: db, metrics: metrics.New()}, nil
}

// Close writes the metrics textfile when requested and closes the database.
func (r *runtime) Close() error {
	err := r.metrics.WriteTextfile(flagMetricsFile)
	if err != nil {
		err = fmt.Errorf("writing metrics: %w", err)
	}
	return errors.Join(err, r.db.Close())
}

func (r *runtime) advisor() (*advisor.Advisor, error) {
	completer, err := advisor.NewCompleter(r.cfg.Provider)
	if err != nil {
		return nil, err
	}
	cache, err := advisor.NewResponseCache(r.cfg.Cache.Policy, r.cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	if completer.Name() == config.ProviderNone {
		r.log.Warn("no recommendation provider configured, reports will use fallback content")
	}
	return advisor.New(advisor.NewCachedCompleter(completer, cache),
		advisor.WithLogger(r.log),
		advisor.WithMetrics(r.metrics),
	), nil
}

func (r *runtime) scorer() *scoring.AdoptionEngine {
	return scoring.NewAdoptionEngine(r.db, r.log)
}

func (r *runtime) blend() (scoring.BlendPolicy, error) {
	p := scoring.BlendPolicy{ValueWeight: r.cfg.Blend.ValueWeight, EaseWeight: r.cfg.Blend.EaseWeight}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	return p, nil
}

func (r *runtime) engine() (*prioritize.Engine, error) {
	adv, err := r.advisor()
	if err != nil {
		return nil, err
	}
	return prioritize.New(r.db, adv, r.scorer(),
		prioritize.WithLogger(r.log),
		prioritize.WithMetrics(r.metrics),
		prioritize.WithTopN(r.cfg.Engine.TopN),
		prioritize.WithWriteConcurrency(r.cfg.Engine.WriteConcurrency),
		prioritize.WithCallTimeout(r.cfg.Engine.CallTimeout),
	), nil
}

func (r *runtime) rationalizer(withProvider bool) (*rationalize.Rationalizer, error) {
	opts := []rationalize.Option{
		rationalize.WithLogger(r.log),
		rationalize.WithMetrics(r.metrics),
		rationalize.WithBatchSize(r.cfg.RationalizeBatchSize()),
		rationalize.WithModel(r.cfg.Rationalize.Model),
	}
	if !withProvider {
		return rationalize.New(r.db, nil, opts...), nil
	}
	adv, err := r.advisor()
	if err != nil {
		return nil, err
	}
	return rationalize.New(r.db, adv, opts...), nil
}

// withRuntime opens the runtime, runs fn, and closes the runtime. A close
// failure is reported only when fn succeeded.
func withRuntime(fn func(rt *runtime) error) (err error) {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(rt)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
