// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

//go:build test && linux

// Package testutils holds helpers for tests that need an isolated network
package testutils

import (
	"runtime"
	"testing"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

// WithNS runs fn with the calling goroutine switched to ns, then switches back.
// Sockets opened by fn stay bound to ns after WithNS returns.
func WithNS(ns netns.NsHandle, fn func() error) error {
	if ns == netns.None() {
		return fn()
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	prevNS, err := netns.Get()
	if err != nil {
		return err
	}
	defer prevNS.Close()

	if ns.Equal(prevNS) {
		return fn()
	}

	if err := netns.Set(ns); err != nil {
		return err
	}

	fnErr := fn()
	nsErr := netns.Set(prevNS)
	if fnErr != nil {
		return fnErr
	}
	return nsErr
}

// NewLoopbackNS creates a network namespace whose only link is lo, brought up.
// The test is skipped when namespaces cannot be created (usually missing
// CAP_SYS_ADMIN). The handle is closed when the test ends.
func NewLoopbackNS(t *testing.T) netns.NsHandle {
	t.Helper()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	orig, err := netns.Get()
	if err != nil {
		t.Fatalf("cannot get current namespace: %s", err)
	}
	defer orig.Close()

	// netns.New also switches the thread into the new namespace
	ns, err := netns.New()
	if err != nil {
		t.Skipf("cannot create a network namespace: %s", err)
	}
	t.Cleanup(func() { ns.Close() })
	if err := netns.Set(orig); err != nil {
		t.Fatalf("cannot restore namespace: %s", err)
	}

	err = WithNS(ns, func() error {
		lo, err := netlink.LinkByName("lo")
		if err != nil {
			return err
		}
		return netlink.LinkSetUp(lo)
	})
	if err != nil {
		t.Fatalf("cannot bring up loopback: %s", err)
	}
	return ns
}
