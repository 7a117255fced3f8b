// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"fmt"

	"github.com/DataDog/datadog-ping/parser"
	"github.com/DataDog/datadog-ping/target"
)

// argsFor returns the binary and the argument list of a process strategy
func argsFor(kind Kind, o Options) (string, []string, error) {
	interval := "-i" + o.intervalSeconds()
	var args []string

	switch kind {
	case KindIPTools:
		// -O reports missing replies as "no answer yet"
		args = append(args, "-O", interval)
		args = append(args, familyFlag(o.Target)...)
		if o.Interface != "" {
			args = append(args, "-I", o.Interface)
		}
		args = append(args, o.RawArguments...)
		return "ping", append(args, o.Target.String()), nil

	case KindBusyBox:
		args = append(args, interval)
		args = append(args, familyFlag(o.Target)...)
		if o.Interface != "" {
			args = append(args, "-I", o.Interface)
		}
		args = append(args, o.RawArguments...)
		return "ping", append(args, o.Target.String()), nil

	case KindBSD:
		args = append(args, interval)
		if o.Interface != "" {
			args = append(args, "-I", o.Interface)
		}
		args = append(args, o.RawArguments...)
		return "ping", append(args, o.Target.String()), nil

	case KindMacOS:
		cmd := "ping"
		if o.Target.IsIPv6() {
			cmd = "ping6"
		}
		args = append(args, interval)
		args = append(args, o.RawArguments...)
		args = append(args, o.Target.String())
		if o.Interface != "" {
			args = append(args, "-b", o.Interface)
		}
		return cmd, args, nil

	case KindWindows:
		// -t pings until stopped, the interval is fixed at one second
		args = append(args, "-t")
		args = append(args, o.RawArguments...)
		return "ping", append(args, o.Target.String()), nil
	}
	return "", nil, fmt.Errorf("strategy %s does not run a ping binary", kind)
}

// familyFlag forces the address family when the binary resolves a hostname
func familyFlag(t target.Target) []string {
	if !t.IsHostname() {
		return nil
	}
	switch t.Family() {
	case target.FamilyV4:
		return []string{"-4"}
	case target.FamilyV6:
		return []string{"-6"}
	default:
		return nil
	}
}

// parserFor returns the line parser of a process strategy
func parserFor(kind Kind) parser.Func {
	switch kind {
	case KindIPTools, KindBusyBox:
		return parser.ParseLinux
	case KindBSD, KindMacOS:
		return parser.ParseBSD
	case KindWindows:
		return parser.ParseWindows
	default:
		return nil
	}
}
