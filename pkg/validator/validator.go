// Package validator checks catalog entities statically and against their
// live sample data.
//
// Static naming checks run first and never block sampling. Samples are then
// fetched in fixed-size batches: batches run one after another, the entities
// of one batch run concurrently, and each fetch has its own timeout. A
// failed fetch is recorded against its entity only.
package validator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/datacache"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
)

// Sampler fetches the recent sample data of an entity.
type Sampler interface {
	FetchSample(ctx context.Context, e *catalog.Entity) (any, error)
}

// Validator runs the static and sample checks.
type Validator struct {
	sampler   Sampler
	batchSize int
	timeout   time.Duration
	rules     []NamingRule
}

// Option configures a Validator.
type Option func(*Validator)

// WithBatchSize sets how many samples are fetched concurrently.
func WithBatchSize(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.batchSize = n
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithNamingRules replaces the identifier naming convention.
func WithNamingRules(rules []NamingRule) Option {
	return func(v *Validator) { v.rules = rules }
}

// New creates a validator fetching samples through sampler.
func New(sampler Sampler, opts ...Option) *Validator {
	v := &Validator{
		sampler:   sampler,
		batchSize: constants.DefaultBatchSize,
		timeout:   constants.DefaultSampleTimeout,
		rules:     DefaultNamingRules,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Result is the outcome of a validation run.
type Result struct {
	Issues        []Issue
	TotalChecked  int
	FailedFetches int
	Batches       int

	// States holds the terminal state of every sampled entity.
	States map[catalog.Key]State

	// Failures holds the typed error of every entity whose sample could
	// not be fetched or was malformed.
	Failures map[catalog.Key]error

	// Cache holds every successfully fetched payload, valid or not.
	Cache *datacache.Cache
}

// IssueCount returns the number of issues.
func (r *Result) IssueCount() int { return len(r.Issues) }

// outcome is the per-entity result of a sample check.
type outcome struct {
	entity   *catalog.Entity
	state    State
	payload  any
	err      error
	findings []catalog.Finding
}

func (o outcome) failed() bool { return o.state == StateFailedFetch }

// Validate checks entities and attaches findings to them. Fetch failures
// are findings, not errors; the returned error is non-nil only when ctx
// was cancelled before every batch ran.
func (v *Validator) Validate(ctx context.Context, entities []*catalog.Entity) (*Result, error) {
	ctx = logging.WithStage(ctx, "validate")
	logger := logging.FromContext(ctx)

	result := &Result{
		States:   make(map[catalog.Key]State, len(entities)),
		Failures: make(map[catalog.Key]error),
		Cache:    datacache.New(),
	}

	for _, e := range entities {
		for _, f := range CheckNaming(e, v.rules) {
			e.AddFinding(f)
		}
	}

	var runErr error
	for start := 0; start < len(entities); start += v.batchSize {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		end := min(start+v.batchSize, len(entities))
		batch := entities[start:end]
		result.Batches++

		outcomes := v.runBatch(ctx, batch)
		failed := 0
		for _, o := range outcomes {
			result.TotalChecked++
			result.States[o.entity.Key()] = o.state
			if o.err != nil {
				result.Failures[o.entity.Key()] = o.err
			}
			if o.failed() {
				failed++
			} else {
				result.Cache.Set(o.entity.Key(), o.payload)
			}
			for _, f := range o.findings {
				o.entity.AddFinding(f)
			}
		}
		result.FailedFetches += failed

		logger.Info().
			Int("batch", result.Batches).
			Int("size", len(batch)).
			Int("failed", failed).
			Msg("Validated batch")
	}

	result.Issues = IssuesFor(entities)
	logger.Info().
		Int("checked", result.TotalChecked).
		Int("failed_fetches", result.FailedFetches).
		Int("issues", len(result.Issues)).
		Msg("Validation complete")
	return result, runErr
}

// runBatch samples every entity of batch concurrently and waits for all of
// them. Outcomes come back in batch order.
func (v *Validator) runBatch(ctx context.Context, batch []*catalog.Entity) []outcome {
	type indexed struct {
		i int
		o outcome
	}

	p := pool.NewWithResults[indexed]().WithMaxGoroutines(len(batch))
	for i, e := range batch {
		p.Go(func() indexed {
			return indexed{i: i, o: v.check(ctx, e)}
		})
	}
	results := p.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].i < results[b].i })
	out := make([]outcome, len(results))
	for i, r := range results {
		out[i] = r.o
	}
	return out
}

type fetchResult struct {
	payload any
	err     error
}

// check drives one entity from Pending to a terminal state.
func (v *Validator) check(ctx context.Context, e *catalog.Entity) outcome {
	ctx = logging.WithEntity(ctx, e.Key().String())
	logger := logging.FromContext(ctx)

	m := newEntityMachine()
	fire := func(event string) {
		if err := m.fire(ctx, event); err != nil {
			logger.Error().Err(err).Str("event", event).Msg("Invalid validation state transition")
		}
	}
	fire(eventFetch)

	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		payload, err := v.sampler.FetchSample(reqCtx, e)
		done <- fetchResult{payload: payload, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-reqCtx.Done():
		res = fetchResult{err: errors.NewTimeoutError("sample fetch", v.timeout.String(), reqCtx.Err().Error())}
	}

	if res.err != nil {
		if errors.IsTimeout(res.err) || errors.Is(res.err, context.DeadlineExceeded) {
			fire(eventTimeout)
		} else {
			fire(eventFail)
		}
		fire(eventGiveUp)
		logger.Warn().Err(res.err).Msg("Sample fetch failed")
		return outcome{
			entity: e,
			state:  m.state(),
			err:    res.err,
			findings: []catalog.Finding{{
				Code:    CodeFetchError,
				Message: fmt.Sprintf("sample fetch failed: %v", res.err),
				Count:   1,
			}},
		}
	}

	fire(eventReceive)
	findings := ValidatePayload(e.CollectionKey(), res.payload)
	fire(eventValidate)
	if len(findings) > 0 {
		logger.Debug().Int("findings", len(findings)).Msg("Sample payload has findings")
	}
	err := malformed(e, findings)
	if err != nil {
		logger.Warn().Err(err).Msg("Sample payload is malformed")
	}
	return outcome{entity: e, state: m.state(), payload: res.payload, err: err, findings: findings}
}

// malformed returns a MalformedPayloadError for the first malformed point
// finding, nil if there is none.
func malformed(e *catalog.Entity, findings []catalog.Finding) error {
	for _, f := range findings {
		if f.Code == CodeMalformedPayload {
			return errors.NewMalformedPayloadError(e.Key().String(), f.Message)
		}
	}
	return nil
}
