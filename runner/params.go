// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package runner

import (
	"time"

	"github.com/DataDog/datadog-ping/target"
)

// Params describe one pinged host (or one timed command)
type Params struct {
	Hostname     string
	Family       target.Family
	Protocol     string
	Interval     time.Duration
	Port         uint16
	AllowRST     bool
	Interface    string
	RawArguments []string
	// Count stops the run after that many replies or timeouts, 0 runs until ctx ends
	Count int
	// Timeout bounds the whole run, 0 means no bound
	Timeout    time.Duration
	ReverseDns bool
	// Command switches to command timing, Hostname is then ignored
	Command string
}

// Label names the session the way results are printed
func (p Params) Label() string {
	if p.Command != "" {
		return p.Command
	}
	return p.Hostname
}
