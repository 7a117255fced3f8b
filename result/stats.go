// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package result

import (
	"math"
	"slices"
	"time"
)

type (
	// Summary aggregates the results of one session. Latencies are in milliseconds.
	Summary struct {
		Rtts                 []float64 `json:"rtts"`
		PacketsSent          int       `json:"packets_sent"`
		PacketsReceived      int       `json:"packets_received"`
		PacketLossPercentage float32   `json:"packet_loss_percentage"`
		Timeouts             int       `json:"timeouts"`
		Unknowns             int       `json:"unknowns"`
		Jitter               float64   `json:"jitter"`
		Rtt                  Latency   `json:"latency"`
	}

	Latency struct {
		Avg float64 `json:"avg"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
		P95 float64 `json:"p95"`
	}
)

// Stats accumulates results. The zero value is ready to use; it is not safe
// for concurrent use.
type Stats struct {
	rtts     []time.Duration
	timeouts int
	unknowns int
}

// Add records one result
func (s *Stats) Add(r PingResult) {
	switch r.Type {
	case TypePong:
		s.rtts = append(s.rtts, r.RTT)
	case TypeTimeout:
		s.timeouts++
	case TypeUnknown:
		s.unknowns++
	}
}

// Summary computes the aggregates of everything added so far
func (s *Stats) Summary() Summary {
	received := len(s.rtts)
	sent := received + s.timeouts
	summary := Summary{
		Rtts:            convertRttsAsFloat(s.rtts),
		PacketsSent:     sent,
		PacketsReceived: received,
		Timeouts:        s.timeouts,
		Unknowns:        s.unknowns,
		Jitter:          durationMs(computeJitter(s.rtts)),
	}
	if sent > 0 {
		summary.PacketLossPercentage = float32(s.timeouts) / float32(sent) * 100
	}
	if received == 0 {
		return summary
	}

	sorted := slices.Clone(s.rtts)
	slices.Sort(sorted)
	var total time.Duration
	for _, rtt := range sorted {
		total += rtt
	}
	summary.Rtt = Latency{
		Avg: durationMs(total / time.Duration(received)),
		Min: durationMs(sorted[0]),
		Max: durationMs(sorted[received-1]),
		P95: durationMs(percentile(sorted, 95)),
	}
	return summary
}

// percentile uses the nearest-rank method on sorted values
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func convertRttsAsFloat(rtts []time.Duration) []float64 {
	rttsFloat := make([]float64, 0, len(rtts))
	for _, rtt := range rtts {
		rttsFloat = append(rttsFloat, durationMs(rtt))
	}
	return rttsFloat
}

// computeJitter is the mean absolute difference between consecutive round trips
func computeJitter(rtts []time.Duration) time.Duration {
	if len(rtts) < 2 {
		return time.Duration(0)
	}
	var cumulativeDifference time.Duration
	for i := 1; i < len(rtts); i++ {
		cumulativeDifference += (rtts[i] - rtts[i-1]).Abs()
	}
	return cumulativeDifference / time.Duration(len(rtts)-1)
}
