// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/DataDog/datadog-ping/result"
)

const (
	fakeMinLatencyMs = 51
	fakeMaxLatencyMs = 149
)

// fakeLatency is uniform in [fakeMinLatencyMs, fakeMaxLatencyMs]
func fakeLatency() time.Duration {
	ms := fakeMinLatencyMs + rand.IntN(fakeMaxLatencyMs-fakeMinLatencyMs+1)
	return time.Duration(ms) * time.Millisecond
}

func (p *Pinger) runFake(ctx context.Context, out chan<- result.PingResult) {
	for {
		rtt := fakeLatency()
		line := fmt.Sprintf("Fake ping line: %d ms", rtt.Milliseconds())
		if !emit(ctx, out, result.Pong(rtt, line)) {
			return
		}
		if !sleep(ctx, p.options.Interval) {
			return
		}
	}
}
