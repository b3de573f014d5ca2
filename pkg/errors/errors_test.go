package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/metricdocs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("snapshot", "/metrics")
		assert.Equal(t, "snapshot with ID /metrics not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("failed"), pkgerrors.NewNotFoundError("entity", "fees"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("value", 42, "top-level value must be an object")
		assert.Equal(t, "validation failed for field value: top-level value must be an object", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad"}
		assert.Equal(t, "validation failed: bad", err.Error())
	})
}

func TestTransportErrors(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapTransport("/metrics", base)
		assert.True(t, pkgerrors.IsTransport(err))
		assert.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "/metrics")
	})

	t.Run("api error counts as transport", func(t *testing.T) {
		err := pkgerrors.NewAPIError("/metrics", 502, "bad gateway")
		assert.True(t, pkgerrors.IsTransport(err))
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("nil wraps to nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapTransport("/metrics", nil))
	})
}

func TestTimeoutError(t *testing.T) {
	err := pkgerrors.NewTimeoutError("sample fetch", "5s", "deadline exceeded")
	assert.True(t, pkgerrors.IsTimeout(err))
	assert.False(t, pkgerrors.IsTransport(err))
	assert.Contains(t, err.Error(), "5s")
}

func TestMalformedPayloadError(t *testing.T) {
	err := &pkgerrors.MalformedPayloadError{Entity: "bitcoin/fees", Message: "date without value"}
	assert.True(t, pkgerrors.IsMalformedPayload(err))
	assert.Contains(t, err.Error(), "bitcoin/fees")
}

func TestConfigError(t *testing.T) {
	base := errors.New("not set")
	err := pkgerrors.NewConfigError("api", "api_key is required", base)
	assert.True(t, pkgerrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "api_key")
	assert.Equal(t, base, err.Unwrap())
}

func TestIOError(t *testing.T) {
	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.WrapIO("delete", "/docs/chains/bitcoin/fees.mdx", base)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "delete", ioErr.Operation)
		assert.True(t, pkgerrors.IsFilesystem(err))
		assert.ErrorIs(t, err, base)
	})

	t.Run("nil wraps to nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", "catalog.json", errors.New("unexpected EOF"))
	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "json", parseErr.Format)
	assert.Contains(t, err.Error(), "catalog.json")
}
