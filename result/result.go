// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package result

import (
	"fmt"
	"time"
)

// Type is the closed set of outcomes a pinger reports
type Type int

const (
	// TypePong is a measured round trip
	TypePong Type = iota
	// TypeTimeout is a reply the platform explicitly reported as missing
	TypeTimeout
	// TypeUnknown is output that could not be classified
	TypeUnknown
	// TypeProcessExited is the last result of a pinger whose worker ended
	TypeProcessExited
)

var typeNames = [...]string{
	TypePong:          "pong",
	TypeTimeout:       "timeout",
	TypeUnknown:       "unknown",
	TypeProcessExited: "exited",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	for i, name := range typeNames {
		if name == string(b) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unknown result type %q", b)
}

type (
	// PingResult is one normalized event produced by a pinger
	PingResult struct {
		Type Type `json:"type"`
		// RTT is only set for TypePong
		RTT time.Duration `json:"rtt,omitempty"`
		// Context is the output line or the address the result originates from
		Context string `json:"context,omitempty"`
		// ExitCode and Stderr are only set for TypeProcessExited
		ExitCode int    `json:"exit_code,omitempty"`
		Stderr   string `json:"stderr,omitempty"`
	}
)

// Pong is a successful measurement
func Pong(rtt time.Duration, context string) PingResult {
	return PingResult{Type: TypePong, RTT: rtt, Context: context}
}

// Timeout is an explicitly reported missed reply
func Timeout(context string) PingResult {
	return PingResult{Type: TypeTimeout, Context: context}
}

// Unknown is unclassified output, forwarded for diagnostics
func Unknown(context string) PingResult {
	return PingResult{Type: TypeUnknown, Context: context}
}

// ProcessExited ends a result stream
func ProcessExited(exitCode int, stderr string) PingResult {
	return PingResult{Type: TypeProcessExited, ExitCode: exitCode, Stderr: stderr}
}

// IsTerminal reports whether no result can follow this one
func (r PingResult) IsTerminal() bool {
	return r.Type == TypeProcessExited
}

func (r PingResult) String() string {
	switch r.Type {
	case TypePong:
		return r.RTT.String()
	case TypeTimeout:
		return "Timeout"
	case TypeUnknown:
		return "Unknown"
	case TypeProcessExited:
		return fmt.Sprintf("Exited(%d)", r.ExitCode)
	default:
		return r.Type.String()
	}
}
