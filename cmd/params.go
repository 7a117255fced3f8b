// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/DataDog/datadog-ping/pinger"
	"github.com/DataDog/datadog-ping/runner"
	"github.com/DataDog/datadog-ping/target"
)

// buildParams turns the command line into one runner.Params per host or command
func buildParams(hosts []string, a args) ([]runner.Params, error) {
	if len(hosts) == 0 && len(a.commands) == 0 {
		return nil, errors.New("at least one host or --cmd is required")
	}
	if a.wantV4 && a.wantV6 {
		return nil, errors.New("--ipv4 and --ipv6 are mutually exclusive")
	}
	if a.tcp && a.raw {
		return nil, errors.New("--tcp and --raw are mutually exclusive")
	}
	if a.watchInterval < 0 {
		return nil, fmt.Errorf("--watch-interval must be positive, got %v", a.watchInterval)
	}
	if a.count < 0 {
		return nil, fmt.Errorf("--count must not be negative, got %d", a.count)
	}
	if a.port < 1 || a.port > 65535 {
		return nil, fmt.Errorf("--port must be between 1 and 65535, got %d", a.port)
	}

	family := target.FamilyAny
	switch {
	case a.wantV4:
		family = target.FamilyV4
	case a.wantV6:
		family = target.FamilyV6
	}
	protocol := pinger.ProtocolICMP
	switch {
	case a.tcp:
		protocol = pinger.ProtocolTCP
	case a.raw:
		protocol = pinger.ProtocolRaw
	}
	// zero lets each source apply its own default
	interval := time.Duration(a.watchInterval * float64(time.Second))
	timeout := time.Duration(a.timeout) * time.Millisecond

	params := make([]runner.Params, 0, len(hosts)+len(a.commands))
	for _, host := range hosts {
		params = append(params, runner.Params{
			Hostname:     host,
			Family:       family,
			Protocol:     string(protocol),
			Interval:     interval,
			Port:         uint16(a.port),
			AllowRST:     a.allowRST,
			Interface:    a.iface,
			RawArguments: a.pingArgs,
			Count:        a.count,
			Timeout:      timeout,
			ReverseDns:   a.reverseDns,
		})
	}
	for _, command := range a.commands {
		params = append(params, runner.Params{
			Command:  command,
			Interval: interval,
			Count:    a.count,
			Timeout:  timeout,
		})
	}
	return params, nil
}
