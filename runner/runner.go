// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package runner drains pingers into sessions for the CLI and the HTTP server
package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/DataDog/datadog-ping/cmdwatch"
	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/pinger"
	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/reversedns"
	"github.com/DataDog/datadog-ping/target"
)

const commandStrategy = "command"

// Source is a started-on-demand stream of results, implemented by
// *pinger.Pinger and *cmdwatch.Watcher
type Source interface {
	Start(ctx context.Context) (<-chan result.PingResult, error)
	Stop()
}

var (
	newSourceFn     = newSource
	getReverseDNSFn = reversedns.GetReverseDNS
)

func newSource(ctx context.Context, params Params) (Source, string, error) {
	if params.Command != "" {
		interval := params.Interval
		if interval == 0 {
			interval = common.DefaultCommandInterval
		}
		w, err := cmdwatch.New(params.Command, interval)
		if err != nil {
			return nil, "", err
		}
		return w, commandStrategy, nil
	}

	opts, err := Options(params)
	if err != nil {
		return nil, "", err
	}
	p, err := pinger.FromOptions(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	return p, p.Kind().String(), nil
}

// Options converts params to pinger options, applying defaults to zero values
func Options(params Params) (pinger.Options, error) {
	opts := pinger.NewOptions(target.New(params.Hostname, params.Family)).
		WithInterface(params.Interface).
		WithRawArguments(params.RawArguments).
		WithAllowRST(params.AllowRST)
	if params.Interval > 0 {
		opts = opts.WithInterval(params.Interval)
	}
	if params.Port > 0 {
		opts = opts.WithPort(params.Port)
	}
	if params.Protocol != "" {
		protocol, err := pinger.ParseProtocol(params.Protocol)
		if err != nil {
			return pinger.Options{}, err
		}
		opts = opts.WithProtocol(protocol)
	}
	return opts, nil
}

// Run pings one host until Count replies or timeouts were seen, the source
// ends, or ctx is done. onResult, when set, sees every result as it arrives.
// Only errors raised while building or starting the source are returned.
func Run(ctx context.Context, params Params, onResult func(result.PingResult)) (*result.Session, error) {
	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	src, strategy, err := newSourceFn(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", params.Label(), err)
	}
	defer src.Stop()

	session := result.NewSession(params.Label(), strategy)
	if params.ReverseDns && params.Command == "" {
		session.ReverseDns = lookupReverseDNS(ctx, params)
	}

	ch, err := src.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", params.Label(), err)
	}

	probes := 0
loop:
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				break loop
			}
			session.Add(r)
			if onResult != nil {
				onResult(r)
			}
			if r.Type == result.TypePong || r.Type == result.TypeTimeout {
				probes++
			}
			if r.IsTerminal() || (params.Count > 0 && probes >= params.Count) {
				break loop
			}
		case <-ctx.Done():
			break loop
		}
	}

	src.Stop()
	session.Finish()
	return session, nil
}

func lookupReverseDNS(ctx context.Context, params Params) []string {
	addr, err := target.New(params.Hostname, params.Family).Resolve(ctx)
	if err != nil {
		log.Debugf("reverse dns: cannot resolve %s: %s", params.Hostname, err)
		return nil
	}
	names, err := getReverseDNSFn(ctx, addr)
	if err != nil {
		log.Debugf("reverse dns: %s", err)
		return nil
	}
	return names
}

// RunMulti runs every params concurrently. onResult may be called from
// several goroutines at once. The first creation error cancels the others.
func RunMulti(ctx context.Context, params []Params, onResult func(label string, r result.PingResult)) ([]*result.Session, error) {
	sessions := make([]*result.Session, len(params))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range params {
		g.Go(func() error {
			var cb func(result.PingResult)
			if onResult != nil {
				label := p.Label()
				cb = func(r result.PingResult) { onResult(label, r) }
			}
			session, err := Run(ctx, p, cb)
			if err != nil {
				return err
			}
			sessions[i] = session
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sessions, nil
}
