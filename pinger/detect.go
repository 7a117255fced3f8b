// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/DataDog/datadog-ping/log"
)

// LinuxPingType is the dialect of the ping binary found on a Linux host
type LinuxPingType int

const (
	LinuxPingIPTools LinuxPingType = iota + 1
	LinuxPingBusyBox
)

func (t LinuxPingType) String() string {
	switch t {
	case LinuxPingIPTools:
		return "iputils"
	case LinuxPingBusyBox:
		return "busybox"
	default:
		return "unknown"
	}
}

const detectTimeout = 5 * time.Second

var runPingVersionFn = runPingVersion

// cLocale forces untranslated ping output
func cLocale(env []string) []string {
	return append(env, "LANG=C", "LC_ALL=C")
}

// runPingVersion runs `ping -V`. A non-zero exit status is not an error:
// BusyBox rejects -V but still identifies itself on stderr.
func runPingVersion(ctx context.Context) (stdout, stderr []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, "ping", "-V")
	cmd.Env = cLocale(os.Environ())
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, nil, pkgerrors.Wrap(err, "failed to run ping -V")
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

// DetectLinuxPing identifies the ping binary on PATH
func DetectLinuxPing(ctx context.Context) (LinuxPingType, error) {
	stdout, stderr, err := runPingVersionFn(ctx)
	if err != nil {
		return 0, newCreationError(ErrKindSpawn, err, "could not detect the ping dialect")
	}
	return classifyPingVersion(string(stdout), string(stderr))
}

func classifyPingVersion(stdout, stderr string) (LinuxPingType, error) {
	switch {
	case strings.Contains(stderr, "BusyBox"):
		return LinuxPingBusyBox, nil
	case strings.Contains(stdout, "iputils"):
		return LinuxPingIPTools, nil
	case strings.Contains(stdout, "inetutils"):
		return 0, &CreationError{
			Kind:    ErrKindNotSupported,
			Message: "GNU inetutils ping is not supported, install iputils-ping",
		}
	}
	log.Debugf("unrecognized ping -V output, stdout=%q stderr=%q", stdout, stderr)
	return 0, &CreationError{
		Kind:    ErrKindUnknownPing,
		Message: "could not detect the ping dialect",
		Stdout:  firstLines(stdout, 2),
		Stderr:  firstLines(stderr, 2),
	}
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
