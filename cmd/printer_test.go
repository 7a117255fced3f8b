// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/datadog-ping/result"
)

func testSession() *result.Session {
	s := result.NewSession("1.1.1.1", "iputils")
	s.ReverseDns = []string{"one.one.one.one"}
	s.Add(result.Pong(10*time.Millisecond, "1.1.1.1"))
	s.Add(result.Timeout("1.1.1.1"))
	s.Add(result.Pong(20*time.Millisecond, "1.1.1.1"))
	s.Finish()
	return s
}

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.onResult("1.1.1.1", result.Pong(12*time.Millisecond, "1.1.1.1"))
	p.onResult("1.1.1.1", result.Timeout("1.1.1.1"))
	p.onResult("1.1.1.1", result.ProcessExited(2, "ping: unknown host\n"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"1.1.1.1: 12ms",
		"1.1.1.1: Timeout",
		"1.1.1.1: Exited(2) ping: unknown host",
	}, lines)
}

func TestPrinterTextSummary(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	require.NoError(t, p.summary([]*result.Session{testSession()}))

	out := buf.String()
	assert.Contains(t, out, "--- 1.1.1.1 (one.one.one.one) iputils statistics ---")
	assert.Contains(t, out, "3 probes, 2 replies, 33.3% loss, 0 unknown")
	assert.Contains(t, out, "rtt min/avg/max/p95/jitter = 10.000/15.000/20.000/")
}

func TestPrinterTextSummaryNoReplies(t *testing.T) {
	s := result.NewSession("10.0.0.1", "tcp")
	s.Add(result.Timeout("10.0.0.1"))
	s.Finish()

	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, false).summary([]*result.Session{s}))
	assert.Contains(t, buf.String(), "1 probes, 0 replies, 100.0% loss")
	assert.NotContains(t, buf.String(), "rtt")
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	p.onResult("1.1.1.1", result.Pong(12*time.Millisecond, "1.1.1.1"))
	assert.Zero(t, buf.Len())

	require.NoError(t, p.summary([]*result.Session{testSession()}))
	var sessions []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "1.1.1.1", sessions[0]["target"])
	assert.Equal(t, "iputils", sessions[0]["strategy"])
}
