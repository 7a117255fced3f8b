// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollTimeoutMillis(t *testing.T) {
	tts := []struct {
		in   time.Duration
		want int
	}{
		{in: -time.Second, want: 0},
		{in: 0, want: 0},
		{in: time.Microsecond, want: 1},
		{in: 200 * time.Millisecond, want: 200},
		{in: 200*time.Millisecond + time.Nanosecond, want: 201},
		{in: time.Hour, want: 1000},
	}
	for _, tt := range tts {
		assert.Equal(t, tt.want, pollTimeoutMillis(tt.in), "timeout %s", tt.in)
	}
}
