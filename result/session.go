// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package result

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Session is the report of one pinger run, as printed by the CLI and
// returned by the HTTP server
type Session struct {
	ID         string       `json:"id"`
	Target     string       `json:"target"`
	ReverseDns []string     `json:"reverse_dns,omitempty"`
	Strategy   string       `json:"strategy"`
	Results    []PingResult `json:"results"`
	Summary    Summary      `json:"summary"`

	stats Stats
}

func NewSession(target string, strategy string) *Session {
	return &Session{
		ID:       newBase64UUID(),
		Target:   target,
		Strategy: strategy,
		Results:  []PingResult{},
	}
}

// Add records r
func (s *Session) Add(r PingResult) {
	s.Results = append(s.Results, r)
	s.stats.Add(r)
}

// Finish computes the summary of every result added so far
func (s *Session) Finish() {
	s.Summary = s.stats.Summary()
}

// encode UUID with base64 for shorter UUID
func newBase64UUID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
