// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package cmdwatch

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/datadog-ping/result"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New("", time.Second)
	assert.Error(t, err)
	_, err = New("true", 0)
	assert.Error(t, err)

	w, err := New("true", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "true", w.Command())
}

func TestShell(t *testing.T) {
	orig := goos
	t.Cleanup(func() { goos = orig })

	goos = "linux"
	name, args := shell("curl -s example.com")
	assert.Equal(t, "sh", name)
	assert.Equal(t, []string{"-c", "curl -s example.com"}, args)

	goos = "windows"
	name, args = shell("dir")
	assert.Equal(t, "cmd", name)
	assert.Equal(t, []string{"/C", "dir"}, args)
}

func TestRunOnce(t *testing.T) {
	skipOnWindows(t)

	tts := []struct {
		description string
		command     string
		expected    result.Type
	}{
		{"success", "exit 0", result.TypePong},
		{"failure", "exit 3", result.TypeTimeout},
	}
	for _, tt := range tts {
		t.Run(tt.description, func(t *testing.T) {
			w, err := New(tt.command, time.Second)
			require.NoError(t, err)
			res := w.runOnce(context.Background())
			assert.Equal(t, tt.expected, res.Type)
			assert.Equal(t, tt.command, res.Context)
		})
	}
}

func TestRunOnceSpawnFailure(t *testing.T) {
	orig := newCommandFn
	t.Cleanup(func() { newCommandFn = orig })
	newCommandFn = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/datadog-ping-shell")
	}

	w, err := New("true", time.Second)
	require.NoError(t, err)
	res := w.runOnce(context.Background())
	assert.Equal(t, result.TypeUnknown, res.Type)
}

func TestWatcherStream(t *testing.T) {
	skipOnWindows(t)

	w, err := New("sleep 0.01", 10*time.Millisecond)
	require.NoError(t, err)
	ch, err := w.Start(context.Background())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		select {
		case r := <-ch:
			assert.Equal(t, result.TypePong, r.Type)
			assert.GreaterOrEqual(t, r.RTT, 10*time.Millisecond)
		case <-time.After(5 * time.Second):
			t.Fatal("no result")
		}
	}

	_, err = w.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)

	w.Stop()
	for range ch {
	}
}
