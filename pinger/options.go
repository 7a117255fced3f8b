// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/target"
)

// Protocol is the probing method requested by the caller
type Protocol string

const (
	// ProtocolICMP uses the platform ping binary (or the ICMP API on Windows)
	ProtocolICMP Protocol = "icmp"
	// ProtocolRaw sends ICMP echo requests on a raw socket
	ProtocolRaw Protocol = "raw"
	// ProtocolTCP times TCP connections
	ProtocolTCP Protocol = "tcp"
)

// ParseProtocol accepts icmp, raw or tcp in any case
func ParseProtocol(s string) (Protocol, error) {
	p := Protocol(strings.ToLower(s))
	switch p {
	case ProtocolICMP, ProtocolRaw, ProtocolTCP:
		return p, nil
	default:
		return "", fmt.Errorf("unknown protocol %q (expected icmp, raw or tcp)", s)
	}
}

// Options configure a Pinger. The With* methods return modified copies.
type Options struct {
	Target   target.Target
	Interval time.Duration
	// Interface binds probes to a network interface, empty means any
	Interface string
	// RawArguments are appended verbatim to the ping command line
	RawArguments []string
	Protocol     Protocol
	// Port and AllowRST only apply to ProtocolTCP
	Port uint16
	// AllowRST counts a refused connection as a reply
	AllowRST bool
}

// NewOptions returns the defaults for probing t
func NewOptions(t target.Target) Options {
	return Options{
		Target:   t,
		Interval: common.DefaultInterval,
		Protocol: ProtocolICMP,
		Port:     common.DefaultTCPPort,
		AllowRST: common.DefaultAllowRST,
	}
}

func (o Options) WithInterval(interval time.Duration) Options {
	o.Interval = interval
	return o
}

func (o Options) WithInterface(iface string) Options {
	o.Interface = iface
	return o
}

func (o Options) WithRawArguments(args []string) Options {
	o.RawArguments = slices.Clone(args)
	return o
}

func (o Options) WithProtocol(p Protocol) Options {
	o.Protocol = p
	return o
}

func (o Options) WithPort(port uint16) Options {
	o.Port = port
	return o
}

func (o Options) WithAllowRST(allow bool) Options {
	o.AllowRST = allow
	return o
}

// Validate checks the options before any strategy is built
func (o Options) Validate() error {
	if o.Target.String() == "" {
		return fmt.Errorf("empty target")
	}
	if o.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", o.Interval)
	}
	switch o.Protocol {
	case ProtocolICMP, ProtocolRaw:
	case ProtocolTCP:
		if o.Port == 0 {
			return fmt.Errorf("tcp port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unknown protocol %q", o.Protocol)
	}
	return nil
}

// intervalSeconds formats the interval the way ping's -i flag expects it,
// in seconds with millisecond precision. Sub-millisecond intervals become 1ms.
func (o Options) intervalSeconds() string {
	ms := max(o.Interval.Round(time.Millisecond).Milliseconds(), 1)
	s := strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
