package snapshots

import (
	"context"

	"github.com/agentstation/metricdocs/pkg/differ"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
	"github.com/agentstation/metricdocs/pkg/shape"
)

// CheckResult is the outcome of one shape check.
type CheckResult struct {
	Endpoint string
	Params   map[string]string

	// IsNew is true when no baseline existed; the current shape became it.
	IsNew bool

	// Changes is empty on first observation and when nothing drifted.
	Changes *differ.Changeset
}

// HasDrift reports whether the check found changes against the baseline.
func (r *CheckResult) HasDrift() bool {
	return r != nil && r.Changes.HasChanges()
}

// Checker compares responses against stored baselines. The baseline is
// replaced whenever drift is found, so drift is measured run over run.
type Checker struct {
	store  *Store
	differ differ.Differ
}

// NewChecker returns a checker backed by store.
func NewChecker(store *Store, opts ...differ.Option) *Checker {
	return &Checker{store: store, differ: differ.New(opts...)}
}

// Check fingerprints value and compares it with the stored baseline for
// endpoint and params.
func (c *Checker) Check(ctx context.Context, endpoint string, params map[string]string, value any) (*CheckResult, error) {
	current, err := shape.Extract(value)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With().
		Str("endpoint", CanonicalKey(endpoint, params)).
		Logger()

	result := &CheckResult{Endpoint: endpoint, Params: params, Changes: &differ.Changeset{}}

	baseline, err := c.store.Load(endpoint, params)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if baseline == nil {
		if _, err := c.store.Save(endpoint, current, params); err != nil {
			return nil, err
		}
		logger.Info().Msg("Recorded new shape baseline")
		result.IsNew = true
		return result, nil
	}

	result.Changes = c.differ.Shapes(baseline.Shape, current, "")
	if !result.Changes.HasChanges() {
		logger.Debug().Msg("Shape unchanged")
		return result, nil
	}

	for _, change := range result.Changes.Changes {
		logger.Warn().
			Str("path", change.Path).
			Str("change", string(change.Type)).
			Str("old", change.OldShape).
			Str("new", change.NewShape).
			Msg("Shape drift detected")
	}
	if _, err := c.store.Save(endpoint, current, params); err != nil {
		return nil, err
	}
	return result, nil
}
