// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"context"
	"net/netip"

	"github.com/DataDog/datadog-ping/icmpecho"
	"github.com/DataDog/datadog-ping/packets"
	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/target"
)

var newEchoConnFn = func(dst netip.Addr, iface string) (packets.EchoConn, error) {
	sock, err := packets.NewEchoSocket(dst, iface)
	if err != nil {
		return nil, err
	}
	return sock, nil
}

// newRawEngine resolves the target once and opens the raw socket
func newRawEngine(ctx context.Context, o Options, r target.Resolver) (*icmpecho.Engine, error) {
	addr, err := o.Target.ResolveWith(ctx, r)
	if err != nil {
		return nil, newCreationError(ErrKindHostname, err, "cannot resolve %s", o.Target)
	}
	conn, err := newEchoConnFn(addr, o.Interface)
	if err != nil {
		return nil, newCreationError(ErrKindRawSocket, err, "cannot open a raw ICMP socket to %s", addr)
	}
	engine, err := icmpecho.NewEngine(conn, addr, o.Interval)
	if err != nil {
		_ = conn.Close()
		return nil, newCreationError(ErrKindInvalidOptions, err, "cannot build the echo engine")
	}
	return engine, nil
}

func (p *Pinger) runRaw(ctx context.Context, out chan<- result.PingResult) {
	stopEngine := context.AfterFunc(ctx, p.engine.Stop)
	defer stopEngine()

	p.engine.Run(func(r result.PingResult) bool {
		return emit(ctx, out, r)
	})
}
