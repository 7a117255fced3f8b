// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/parser"
	"github.com/DataDog/datadog-ping/result"
)

// processWaitDelay bounds how long Wait keeps copying stderr after a kill
const processWaitDelay = time.Second

var newCommandFn = exec.CommandContext

// startProcess spawns the ping binary synchronously so that spawn failures
// are returned to the caller, and returns the worker that reads its output
func (p *Pinger) startProcess(ctx context.Context, out chan<- result.PingResult) (func(), error) {
	kind := p.kind
	name, args, err := argsFor(kind, p.options)
	if err != nil {
		return nil, newCreationError(ErrKindInvalidOptions, err, "cannot build the ping command")
	}

	cmd := newCommandFn(ctx, name, args...)
	cmd.Env = cLocale(os.Environ())
	cmd.WaitDelay = processWaitDelay
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, newCreationError(ErrKindSpawn, err, "cannot capture the output of %s", name)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	log.Debugf("pinger: running %s %s", name, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return nil, newCreationError(ErrKindSpawn, err, "failed to start %s", name)
	}

	parse := parserFor(kind)
	return func() {
		runProcess(ctx, cmd, stdout, stderr, parse, out)
	}, nil
}

// runProcess forwards every parsed stdout line, then reports how the process
// exited. stderr is only read after Wait returns.
func runProcess(ctx context.Context, cmd *exec.Cmd, stdout io.Reader, stderr *bytes.Buffer, parse parser.Func, out chan<- result.PingResult) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		res, ok := parse(scanner.Text())
		if !ok {
			continue
		}
		if !emit(ctx, out, res) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debugf("pinger: reading ping output: %s", err)
	}

	// stdout must be fully drained (or the process killed) before Wait
	if ctx.Err() == nil {
		_, _ = io.Copy(io.Discard, stdout)
	}
	err := cmd.Wait()
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	log.Debugf("pinger: %s exited with code %d: %v", cmd.Path, exitCode, err)
	emit(ctx, out, result.ProcessExited(exitCode, strings.TrimSpace(stderr.String())))
}
