// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/datadog-ping/pinger"
	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/runner"
	"github.com/DataDog/datadog-ping/target"
)

func fakeRun(session *result.Session, err error, seen *runner.Params) runFunc {
	return func(_ context.Context, params runner.Params, _ func(result.PingResult)) (*result.Session, error) {
		if seen != nil {
			*seen = params
		}
		return session, err
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.NotEmpty(t, errResp.Message)
	return errResp
}

func TestNewServer(t *testing.T) {
	srv := NewServer()
	require.NotNil(t, srv, "NewServer() returned nil")
	require.NotNil(t, srv.run, "NewServer() did not set a runner")
}

func TestPingHandlerMethodNotAllowed(t *testing.T) {
	srv := NewServer()
	req := httptest.NewRequest(http.MethodPost, "/ping?target=google.com", nil)
	w := httptest.NewRecorder()

	srv.PingHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPingHandlerMissingTarget(t *testing.T) {
	srv := NewServer()
	srv.run = func(context.Context, runner.Params, func(result.PingResult)) (*result.Session, error) {
		t.Fatal("should not run")
		return nil, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	srv.PingHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeInvalidRequest, decodeError(t, w).Code)
}

func TestPingHandlerSuccess(t *testing.T) {
	session := result.NewSession("1.1.1.1", "fake")
	session.Add(result.Pong(12*time.Millisecond, "1.1.1.1"))
	session.Add(result.Timeout("1.1.1.1"))
	session.Finish()

	var seen runner.Params
	srv := NewServer()
	srv.run = fakeRun(session, nil, &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping?target=1.1.1.1&count=2&protocol=tcp&port=443&allow-rst=true&ipv6=false&ipv4=true&interval=100", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got result.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "fake", got.Strategy)
	require.Len(t, got.Results, 2)
	assert.Equal(t, result.TypePong, got.Results[0].Type)
	assert.Equal(t, 1, got.Summary.PacketsReceived)
	assert.InDelta(t, 50, got.Summary.PacketLossPercentage, 0.001)

	assert.Equal(t, runner.Params{
		Hostname: "1.1.1.1",
		Family:   target.FamilyV4,
		Protocol: "tcp",
		Interval: 100 * time.Millisecond,
		Port:     443,
		AllowRST: true,
		Count:    2,
		Timeout:  200*time.Millisecond + timeoutSlack,
	}, seen)
}

func TestPingHandlerErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "dns failure",
			err:            &target.ResolveError{Host: "nonexistent.invalid", Err: errors.New("no such host")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeDNS,
		},
		{
			name:           "unknown ping",
			err:            &pinger.CreationError{Kind: pinger.ErrKindUnknownPing, Message: "could not detect the ping dialect"},
			expectedStatus: http.StatusNotImplemented,
			expectedCode:   ErrCodeUnsupported,
		},
		{
			name:           "raw socket denied",
			err:            &pinger.CreationError{Kind: pinger.ErrKindRawSocket, Message: "cannot open", Err: syscall.EPERM},
			expectedStatus: http.StatusForbidden,
			expectedCode:   ErrCodeDenied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer()
			srv.run = fakeRun(nil, tt.err, nil)
			req := httptest.NewRequest(http.MethodGet, "/ping?target=example.com", nil)
			w := httptest.NewRecorder()

			srv.PingHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
		})
	}
}

func TestPingHandlerInvalidProtocol(t *testing.T) {
	srv := NewServer()
	req := httptest.NewRequest(http.MethodGet, "/ping?target=127.0.0.1&protocol=ftp", nil)
	w := httptest.NewRecorder()

	srv.PingHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeInvalidRequest, decodeError(t, w).Code)
}

func TestHealthHandler(t *testing.T) {
	srv := NewServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.HealthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response HealthResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response.Status)
	assert.NotEmpty(t, response.Timestamp)
	assert.NotEmpty(t, response.Uptime)
}

func TestHealthHandlerHead(t *testing.T) {
	srv := NewServer()
	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	w := httptest.NewRecorder()

	srv.HealthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Body.String())
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	srv := NewServer()
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()

	srv.HealthHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
