// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"context"

	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/tcp"
)

var tcpProbeFn = tcp.Probe

// runTCP resolves the target on every attempt so that DNS changes are
// followed, and always waits one interval between attempts
func (p *Pinger) runTCP(ctx context.Context, out chan<- result.PingResult) {
	o := p.options
	for {
		var res result.PingResult
		addr, err := o.Target.ResolveAddrPort(ctx, p.resolver, o.Port)
		if err != nil {
			res = result.Unknown(err.Error())
		} else {
			res = tcpProbeFn(ctx, tcp.Config{
				Addr:      addr,
				Timeout:   o.Interval,
				AllowRST:  o.AllowRST,
				Interface: o.Interface,
			})
		}
		if !emit(ctx, out, res) {
			return
		}
		if !sleep(ctx, o.Interval) {
			return
		}
	}
}
