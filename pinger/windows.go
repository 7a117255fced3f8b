// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package pinger

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/result"
)

var errNoReply = errors.New("no reply")

var pingOnceFn = pingOnce

// pingOnce sends a single echo request through pro-bing and waits at most
// timeout for the reply
func pingOnce(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error) {
	pinger := probing.New("")
	pinger.SetIPAddr(&net.IPAddr{IP: addr.AsSlice()})
	// Windows only supports privileged (raw) mode
	pinger.SetPrivileged(true)
	pinger.Count = 1
	pinger.Timeout = timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, err
	}
	stats := pinger.Statistics()
	log.Tracef("ping stats: %+v", stats)
	if stats.PacketsRecv == 0 || len(stats.Rtts) == 0 {
		return 0, errNoReply
	}
	return stats.Rtts[0], nil
}

// runWindows sends one echo per interval. Every failure is reported as a
// Timeout, the ICMP API does not tell them apart.
func (p *Pinger) runWindows(ctx context.Context, out chan<- result.PingResult) {
	dst := p.addr.String()
	for {
		var res result.PingResult
		rtt, err := pingOnceFn(ctx, p.addr, p.options.Interval)
		if err != nil {
			log.Tracef("windows ping to %s: %s", dst, err)
			res = result.Timeout(dst)
		} else {
			res = result.Pong(rtt, dst)
		}
		if !emit(ctx, out, res) {
			return
		}
		if !sleep(ctx, p.options.Interval) {
			return
		}
	}
}
