package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/service"
	"github.com/pribylovaa/forum-engagement/internal/watch"
)

func TestToHTTP_Mapping(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service/x/Op: %w", err) }

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", wrap(service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"bad_request", ErrBadRequest, http.StatusBadRequest, "invalid_argument"},
		{"invalid_query", wrap(watch.ErrInvalidQuery), http.StatusBadRequest, "invalid_argument"},
		{"invalid_event", wrap(service.ErrInvalidEvent), http.StatusBadRequest, "invalid_event"},
		{"unauth", service.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "permission_denied"},
		{"not_found", wrap(service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"not_configured", wrap(service.ErrNotConfigured), http.StatusNotImplemented, "not_configured"},
		{"read", wrap(service.ErrStorageRead), http.StatusServiceUnavailable, "unavailable"},
		{"write", wrap(service.ErrStorageWrite), http.StatusServiceUnavailable, "unavailable"},
		{"partial", wrap(service.ErrBatchPartial), http.StatusInternalServerError, "batch_partial"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", wrap(context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Детали хранилища не утекают в сообщение.
func TestToHTTP_NoLeak(t *testing.T) {
	err := fmt.Errorf("op: %w: %w", service.ErrStorageWrite, fmt.Errorf("mongo: connection refused 10.0.0.5"))
	_, resp := ToHTTP(err)
	require.Equal(t, "storage unavailable", resp.Error.Message)
}

func TestWriteError_RequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "not_found", body.Error.Code)
	require.Equal(t, "rid-1", body.Error.RequestID)
}
