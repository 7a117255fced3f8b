// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package cmdwatch times a shell command at a fixed interval and reports each
// run the way a pinger reports a probe.
package cmdwatch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/result"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start
	ErrAlreadyStarted = errors.New("watcher already started")

	newCommandFn = exec.CommandContext
	goos         = runtime.GOOS
)

// Watcher runs Command every Interval
type Watcher struct {
	command  string
	interval time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New returns a watcher for command. It fails on an empty command or a
// non-positive interval.
func New(command string, interval time.Duration) (*Watcher, error) {
	if command == "" {
		return nil, fmt.Errorf("empty command")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	return &Watcher{command: command, interval: interval}, nil
}

func (w *Watcher) Command() string {
	return w.command
}

func shell(command string) (string, []string) {
	if goos == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

// Start spawns the worker. The returned channel is closed once the worker
// exits after Stop or the cancellation of ctx.
func (w *Watcher) Start(ctx context.Context) (<-chan result.PingResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil, ErrAlreadyStarted
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	out := make(chan result.PingResult, 1)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(out)
		w.run(ctx, out)
	}()
	return out, nil
}

func (w *Watcher) run(ctx context.Context, out chan<- result.PingResult) {
	for {
		res := w.runOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- res:
		case <-ctx.Done():
			return
		}

		t := time.NewTimer(w.interval)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return
		}
	}
}

// runOnce classifies one run: exit status 0 is a Pong, any other exit status
// a Timeout, and a failure to run the command at all is Unknown
func (w *Watcher) runOnce(ctx context.Context) result.PingResult {
	name, args := shell(w.command)
	cmd := newCommandFn(ctx, name, args...)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result.Pong(elapsed, w.command)
	case errors.As(err, &exitErr):
		log.Tracef("cmdwatch: %q exited with %d", w.command, exitErr.ExitCode())
		return result.Timeout(w.command)
	default:
		log.Debugf("cmdwatch: cannot run %q: %s", w.command, err)
		return result.Unknown(err.Error())
	}
}

// Stop cancels the worker and waits for it
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
