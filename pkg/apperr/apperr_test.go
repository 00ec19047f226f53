package apperr_test

import (
	"conduit/pkg/apperr"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	testCases := []struct {
		name   string
		err    *apperr.Error
		kind   apperr.Kind
		status int
	}{
		{"bad request", apperr.BadRequest("m"), apperr.KindBadRequest, http.StatusBadRequest},
		{"unauthorized", apperr.Unauthorized("m"), apperr.KindUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("m"), apperr.KindForbidden, http.StatusForbidden},
		{"not found", apperr.NotFound("m"), apperr.KindNotFound, http.StatusNotFound},
		{"method not allowed", apperr.MethodNotAllowed("m"), apperr.KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{"request timeout", apperr.RequestTimeout("m"), apperr.KindRequestTimeout, http.StatusRequestTimeout},
		{"conflict", apperr.Conflict("m"), apperr.KindConflict, http.StatusConflict},
		{"unprocessable", apperr.UnprocessableEntity("m"), apperr.KindUnprocessableEntity, http.StatusUnprocessableEntity},
		{"too many requests", apperr.TooManyRequests("m"), apperr.KindTooManyRequests, http.StatusTooManyRequests},
		{"internal", apperr.Internal("m"), apperr.KindInternal, http.StatusInternalServerError},
		{"not implemented", apperr.NotImplemented("m"), apperr.KindNotImplemented, http.StatusNotImplemented},
		{"service unavailable", apperr.ServiceUnavailable("m"), apperr.KindServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.status, tc.err.StatusCode)
			assert.Equal(t, "m", tc.err.Error())
		})
	}
}

func TestMetadata(t *testing.T) {
	assert.True(t, apperr.ServiceUnavailable("down").Metadata().Retryable)
	assert.Equal(t, apperr.CategoryAuthentication, apperr.Unauthorized("x").Metadata().Category)
	assert.Equal(t, apperr.SeverityHigh, apperr.Kind("unknown").Metadata().Severity)
	assert.Equal(t, http.StatusInternalServerError, apperr.Kind("unknown").StatusCode())
}

func TestWrapAndIs(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("creating user: %w", apperr.Wrap(apperr.KindConflict, "user already exists", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperr.Conflict(""))
	assert.NotErrorIs(t, err, apperr.NotFound(""))
	assert.Equal(t, "creating user: user already exists: duplicate key", err.Error())

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, e.Kind)
}

func TestWithDetails(t *testing.T) {
	base := apperr.BadRequest("bad").WithDetails(map[string]any{"a": 1})
	extended := base.WithDetails(map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"a": 1}, base.Details)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, extended.Details)
}

func TestFrom(t *testing.T) {
	errNotFound := errors.New("article not found")
	mappings := []apperr.Mapping{{Target: errNotFound, Kind: apperr.KindNotFound}}

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, apperr.From(nil))
	})

	t.Run("existing app error", func(t *testing.T) {
		src := apperr.Forbidden("nope")
		assert.Same(t, src, apperr.From(fmt.Errorf("wrap: %w", src), mappings...))
	})

	t.Run("mapped domain error", func(t *testing.T) {
		e := apperr.From(fmt.Errorf("get: %w", errNotFound), mappings...)
		assert.Equal(t, apperr.KindNotFound, e.Kind)
		assert.Equal(t, "article not found", e.Message)
		assert.ErrorIs(t, e, errNotFound)
	})

	t.Run("unknown error", func(t *testing.T) {
		e := apperr.From(errors.New("boom"), mappings...)
		assert.Equal(t, apperr.KindInternal, e.Kind)
		assert.Equal(t, "Internal Server Error", e.Message)
	})
}
