package sync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/sync"
)

func TestOptions(t *testing.T) {
	opts := sync.Defaults().Apply(
		sync.WithUpdateOnly(true),
		sync.WithDryRun(true),
		sync.WithSkipPages(true),
		sync.WithTimeout(time.Minute),
	)
	assert.True(t, opts.UpdateOnly)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.SkipPages)
	assert.False(t, opts.SkipValidation)
	assert.NoError(t, opts.Validate())

	bad := sync.Defaults().Apply(sync.WithTimeout(-time.Second))
	assert.True(t, errors.IsValidationError(bad.Validate()))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		result *sync.Result
		want   int
	}{
		{"nil result", nil, sync.ExitFailure},
		{"no change", &sync.Result{Unchanged: 4}, sync.ExitNoChange},
		{"added", &sync.Result{Added: []catalog.Key{"a/x"}}, sync.ExitChanged},
		{"removed", &sync.Result{Removed: []catalog.Key{"a/y"}}, sync.ExitChanged},
		{"skipped", &sync.Result{Skipped: true}, sync.ExitNoChange},
		{"dry run with changes", &sync.Result{Added: []catalog.Key{"a/x"}, DryRun: true}, sync.ExitNoChange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.ExitCode())
		})
	}
}

func TestSummary(t *testing.T) {
	r := &sync.Result{Entities: 3, Added: []catalog.Key{"a/x"}, Unchanged: 2, DryRun: true}
	assert.Equal(t, "3 entities: 1 added, 0 removed, 2 unchanged; 0 issues (Dry run)", r.Summary())

	skipped := &sync.Result{Entities: 3, Skipped: true}
	assert.Contains(t, skipped.Summary(), "unchanged")
}
