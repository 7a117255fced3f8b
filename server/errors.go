// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"syscall"

	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/pinger"
	"github.com/DataDog/datadog-ping/target"
)

// ErrorCode is the classified failure reported by the HTTP API
type ErrorCode string

const (
	// ErrCodeDNS indicates a DNS resolution failure.
	ErrCodeDNS ErrorCode = "DNS"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeDenied indicates a permission error or unsupported configuration.
	ErrCodeDenied ErrorCode = "DENIED"
	// ErrCodeUnsupported indicates the host has no usable ping binary.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"
	// ErrCodeInvalidRequest indicates bad parameters from the caller.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeUnknown is the catch-all for unclassified errors.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

// ErrorResponse is the JSON body returned on error from the HTTP API.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// InvalidRequestError wraps a query parameter problem
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return "invalid parameters: " + e.Err.Error()
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}

// ClassifyError inspects an error chain and returns the code and the HTTP status to report.
func ClassifyError(err error) (ErrorCode, int) {
	if err == nil {
		return "", http.StatusOK
	}

	var invalidErr *InvalidRequestError
	if errors.As(err, &invalidErr) {
		return ErrCodeInvalidRequest, http.StatusBadRequest
	}

	var resolveErr *target.ResolveError
	if errors.As(err, &resolveErr) {
		return ErrCodeDNS, http.StatusInternalServerError
	}

	var creationErr *pinger.CreationError
	if errors.As(err, &creationErr) {
		switch creationErr.Kind {
		case pinger.ErrKindInvalidOptions:
			return ErrCodeInvalidRequest, http.StatusBadRequest
		case pinger.ErrKindHostname:
			return ErrCodeDNS, http.StatusInternalServerError
		case pinger.ErrKindUnknownPing, pinger.ErrKindNotSupported:
			return ErrCodeUnsupported, http.StatusNotImplemented
		case pinger.ErrKindRawSocket:
			if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
				return ErrCodeDenied, http.StatusForbidden
			}
			return ErrCodeUnsupported, http.StatusNotImplemented
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrCodeTimeout, http.StatusGatewayTimeout
	}

	var netDNSErr *net.DNSError
	if errors.As(err, &netDNSErr) {
		if netDNSErr.IsTimeout {
			return ErrCodeTimeout, http.StatusGatewayTimeout
		}
		return ErrCodeDNS, http.StatusInternalServerError
	}

	if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
		return ErrCodeDenied, http.StatusForbidden
	}
	return ErrCodeUnknown, http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code, status := ClassifyError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: err.Error()}); encodeErr != nil {
		log.Debugf("failed to encode error response: %s", encodeErr)
	}
}
