// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/datadog-ping/result"
)

func readLines(t *testing.T, name string) []string {
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func describe(r result.PingResult, ok bool) string {
	if !ok {
		return "None"
	}
	return r.String()
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		fixture string
		parse   Func
	}{
		{fixture: "linux_iputils", parse: ParseLinux},
		{fixture: "linux_busybox", parse: ParseLinux},
		{fixture: "macos", parse: ParseBSD},
		{fixture: "bsd", parse: ParseBSD},
		{fixture: "windows", parse: ParseWindows},
	}
	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			lines := readLines(t, tt.fixture+".txt")
			golden := readLines(t, tt.fixture+".golden")
			require.Len(t, lines, len(golden))

			for i, line := range lines {
				got := describe(tt.parse(line))
				assert.Equal(t, golden[i], got, "line %d: %q", i+1, line)
			}
		})
	}
}

func TestParseLinux(t *testing.T) {
	r, ok := ParseLinux("64 bytes from 1.1.1.1: icmp_seq=1 ttl=64 time=23.1 ms")
	require.True(t, ok)
	assert.Equal(t, result.TypePong, r.Type)
	assert.InDelta(t, float64(23100*time.Microsecond), float64(r.RTT), float64(time.Microsecond))
	assert.Equal(t, "64 bytes from 1.1.1.1: icmp_seq=1 ttl=64 time=23.1 ms", r.Context)

	r, ok = ParseLinux("no answer yet for icmp_seq=2")
	require.True(t, ok)
	assert.Equal(t, result.Timeout("no answer yet for icmp_seq=2"), r)

	_, ok = ParseLinux("PING 1.1.1.1 (1.1.1.1) 56(84) bytes of data.")
	assert.False(t, ok)

	r, ok = ParseLinux("64 bytes from 1.1.1.1: icmp_seq=1 ttl=64 (DUP!)")
	require.True(t, ok)
	assert.Equal(t, result.TypeUnknown, r.Type)
}

func TestParseBSD(t *testing.T) {
	r, ok := ParseBSD("Request timeout for icmp_seq 4")
	require.True(t, ok)
	assert.Equal(t, result.TypeTimeout, r.Type)

	_, ok = ParseBSD("PING 1.1.1.1 (1.1.1.1): 56 data bytes")
	assert.False(t, ok)

	// iputils only marker means nothing on BSD
	r, ok = ParseBSD("no answer yet for icmp_seq=2")
	require.True(t, ok)
	assert.Equal(t, result.TypeUnknown, r.Type)
}

func TestParseWindows(t *testing.T) {
	r, ok := ParseWindows("Request timed out.")
	require.True(t, ok)
	assert.Equal(t, result.TypeTimeout, r.Type)

	r, ok = ParseWindows("Reply from 1.1.1.1: bytes=32 time=14ms TTL=64")
	require.True(t, ok)
	assert.Equal(t, result.Pong(14*time.Millisecond, "Reply from 1.1.1.1: bytes=32 time=14ms TTL=64"), r)

	r, ok = ParseWindows("Reply from 1.1.1.1: bytes=32 TIME=7ms TTL=64\r")
	require.True(t, ok)
	assert.Equal(t, 7*time.Millisecond, r.RTT)
	assert.NotContains(t, r.Context, "\r")
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		line string
		want time.Duration
		ok   bool
	}{
		{line: "time=1 ms", want: time.Millisecond, ok: true},
		{line: "time=1ms", want: time.Millisecond, ok: true},
		{line: "time=23.1 ms", want: 23*time.Millisecond + 100*time.Microsecond, ok: true},
		{line: "time=8.91 ms", want: 8*time.Millisecond + 910*time.Microsecond, ok: true},
		{line: "time=0.045 ms", want: 45 * time.Microsecond, ok: true},
		{line: "time=1.123456 ms", want: time.Millisecond + 123456*time.Nanosecond, ok: true},
		{line: "time=1.1234567 ms", want: time.Millisecond + 123456*time.Nanosecond, ok: true},
		{line: "time=abc ms", ok: false},
		{line: "rtt=1 ms", ok: false},
		{line: "time=99999999999999999999 ms", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := extractTime(timeRe, tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
