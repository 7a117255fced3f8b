// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"errors"
	"fmt"
)

// CreationErrorKind classifies why a Pinger could not be built or started
type CreationErrorKind string

const (
	// ErrKindUnknownPing means `ping -V` output matched no known dialect
	ErrKindUnknownPing CreationErrorKind = "UNKNOWN_PING"
	// ErrKindNotSupported means the dialect is known but cannot be parsed (inetutils)
	ErrKindNotSupported CreationErrorKind = "NOT_SUPPORTED"
	// ErrKindSpawn means a process could not be started
	ErrKindSpawn CreationErrorKind = "SPAWN"
	// ErrKindHostname means the target did not resolve to a usable address
	ErrKindHostname CreationErrorKind = "HOSTNAME"
	// ErrKindRawSocket means the raw ICMP socket could not be opened
	ErrKindRawSocket CreationErrorKind = "RAW_SOCKET"
	// ErrKindInvalidOptions means Options.Validate failed
	ErrKindInvalidOptions CreationErrorKind = "INVALID_OPTIONS"
)

// CreationError is returned by FromOptions and Start. It is never returned
// once results are flowing.
type CreationError struct {
	Kind    CreationErrorKind
	Message string
	// Stdout and Stderr hold the head of the detection output for UNKNOWN_PING
	Stdout string
	Stderr string
	Err    error
}

func (e *CreationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	if e.Kind == ErrKindUnknownPing {
		msg = fmt.Sprintf("%s (stdout: %q, stderr: %q)", msg, e.Stdout, e.Stderr)
	}
	return msg
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// IsCreationError reports whether err is a CreationError of the given kind
func IsCreationError(err error, kind CreationErrorKind) bool {
	var ce *CreationError
	return errors.As(err, &ce) && ce.Kind == kind
}

func newCreationError(kind CreationErrorKind, err error, format string, args ...interface{}) *CreationError {
	return &CreationError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
