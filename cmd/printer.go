// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/DataDog/datadog-ping/result"
)

// printer streams results as "label: result" lines, or stays quiet and
// prints the sessions as JSON at the end. It is safe for concurrent use.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, jsonOutput bool) *printer {
	return &printer{w: w, json: jsonOutput}
}

func (p *printer) onResult(label string, r result.PingResult) {
	if p.json {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s: %s", label, r)
	if r.Type == result.TypeProcessExited && r.Stderr != "" {
		line += " " + strings.ReplaceAll(r.Stderr, "\n", " ")
	}
	fmt.Fprintln(p.w, line)
}

func (p *printer) summary(sessions []*result.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		jsonStr, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON marshalling failed: %v", err)
		}
		fmt.Fprintln(p.w, string(jsonStr))
		return nil
	}

	for _, s := range sessions {
		header := s.Target
		if len(s.ReverseDns) > 0 {
			header = fmt.Sprintf("%s (%s)", s.Target, strings.Join(s.ReverseDns, ", "))
		}
		sum := s.Summary
		fmt.Fprintf(p.w, "\n--- %s %s statistics ---\n", header, s.Strategy)
		fmt.Fprintf(p.w, "%d probes, %d replies, %.1f%% loss, %d unknown\n",
			sum.PacketsSent, sum.PacketsReceived, sum.PacketLossPercentage, sum.Unknowns)
		if sum.PacketsReceived > 0 {
			fmt.Fprintf(p.w, "rtt min/avg/max/p95/jitter = %.3f/%.3f/%.3f/%.3f/%.3f ms\n",
				sum.Rtt.Min, sum.Rtt.Avg, sum.Rtt.Max, sum.Rtt.P95, sum.Jitter)
		}
	}
	return nil
}
