// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package pinger picks a probing strategy for the running platform and
// streams its results over a channel. Every strategy shares the same
// contract: FromOptions builds it, Start spawns one worker goroutine, and
// Stop cancels the worker and waits for it to exit.
package pinger

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"runtime"
	"sync"
	"time"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/icmpecho"
	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/target"
)

// resultsBufferSize lets a worker get a little ahead of a slow consumer
const resultsBufferSize = 16

// ErrAlreadyStarted is returned by a second call to Start
var ErrAlreadyStarted = errors.New("pinger already started")

var (
	detectLinuxPingFn                 = DetectLinuxPing
	defaultResolver   target.Resolver = net.DefaultResolver
)

// Pinger probes one target with one strategy
type Pinger struct {
	kind    Kind
	options Options

	// addr is resolved at construction by the strategies that need a fixed address
	addr     netip.Addr
	engine   *icmpecho.Engine
	resolver target.Resolver

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// FromOptions validates opts and picks the strategy. On Linux this runs
// `ping -V` to identify the installed binary; raw sockets are opened here so
// that privilege problems surface before Start.
func FromOptions(ctx context.Context, opts Options) (*Pinger, error) {
	if err := opts.Validate(); err != nil {
		return nil, newCreationError(ErrKindInvalidOptions, err, "invalid options")
	}
	p := &Pinger{options: opts, resolver: defaultResolver}

	switch {
	case common.FakePingEnabled():
		p.kind = KindFake
	case opts.Protocol == ProtocolTCP:
		p.kind = KindTCP
	case opts.Protocol == ProtocolRaw:
		engine, err := newRawEngine(ctx, opts, p.resolver)
		if err != nil {
			return nil, err
		}
		p.kind = KindRawICMP
		p.engine = engine
	default:
		kind, err := kindForPlatform(ctx, runtime.GOOS)
		if err != nil {
			return nil, err
		}
		p.kind = kind
		if kind == KindWindows && !p.windowsProcessMode() {
			addr, err := opts.Target.ResolveWith(ctx, p.resolver)
			if err != nil {
				return nil, newCreationError(ErrKindHostname, err, "cannot resolve %s", opts.Target)
			}
			p.addr = addr
		}
	}
	log.Debugf("pinger: using the %s strategy for %s", p.kind, opts.Target)
	return p, nil
}

// kindForPlatform maps GOOS to a process strategy
func kindForPlatform(ctx context.Context, goos string) (Kind, error) {
	switch goos {
	case "windows":
		return KindWindows, nil
	case "darwin", "ios":
		return KindMacOS, nil
	case "freebsd", "dragonfly", "openbsd", "netbsd":
		return KindBSD, nil
	}
	pingType, err := detectLinuxPingFn(ctx)
	if err != nil {
		return 0, err
	}
	if pingType == LinuxPingBusyBox {
		return KindBusyBox, nil
	}
	return KindIPTools, nil
}

// Kind returns the selected strategy
func (p *Pinger) Kind() Kind {
	return p.kind
}

// Options returns the options the pinger was built with
func (p *Pinger) Options() Options {
	return p.options
}

// windowsProcessMode reports whether Windows falls back to ping.exe, which
// only happens when the caller passes extra ping arguments
func (p *Pinger) windowsProcessMode() bool {
	return len(p.options.RawArguments) > 0
}

// Start spawns the worker and returns its results. The channel is closed
// when the worker exits: after a ProcessExited result, or after Stop or the
// cancellation of ctx.
func (p *Pinger) Start(ctx context.Context) (<-chan result.PingResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil, ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan result.PingResult, resultsBufferSize)

	var worker func()
	switch {
	case p.kind.spawnsProcess() || (p.kind == KindWindows && p.windowsProcessMode()):
		run, err := p.startProcess(ctx, out)
		if err != nil {
			cancel()
			return nil, err
		}
		worker = run
	case p.kind == KindWindows:
		worker = func() { p.runWindows(ctx, out) }
	case p.kind == KindTCP:
		worker = func() { p.runTCP(ctx, out) }
	case p.kind == KindFake:
		worker = func() { p.runFake(ctx, out) }
	case p.kind == KindRawICMP:
		worker = func() { p.runRaw(ctx, out) }
	default:
		cancel()
		return nil, newCreationError(ErrKindInvalidOptions, nil, "no worker for strategy %s", p.kind)
	}

	p.started = true
	p.cancel = cancel
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(out)
		worker()
	}()
	return out, nil
}

// Stop cancels the worker and waits for it. It is safe to call more than
// once, and before Start.
func (p *Pinger) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		cancel := p.cancel
		p.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if p.engine != nil {
			p.engine.Stop()
		}
		p.wg.Wait()
		if p.engine != nil {
			if err := p.engine.Close(); err != nil {
				log.Debugf("pinger: closing raw socket: %s", err)
			}
		}
	})
}

// emit hands r to the consumer. It returns false once ctx is done, which is
// how workers learn that nobody listens anymore.
func emit(ctx context.Context, out chan<- result.PingResult, r result.PingResult) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// sleep waits for d or until ctx is done, whichever comes first
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
