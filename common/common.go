// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package common contains defaults shared by the pinger strategies, the CLI
// and the HTTP server
package common

import (
	"net/netip"
	"os"
	"strconv"
	"time"
)

const (
	DefaultInterval        = 200 * time.Millisecond
	DefaultCommandInterval = 500 * time.Millisecond
	DefaultTCPPort         = 80
	DefaultProtocol        = "icmp"
	DefaultCount           = 0 // run until interrupted
	DefaultServerCount     = 5
	DefaultWantV6          = false
	DefaultReverseDns      = false
	DefaultAllowRST        = false

	// MaxInFlight bounds the raw ICMP correlation table
	MaxInFlight = 10
	// TokenSize is the length of the random payload that identifies a raw echo request
	TokenSize = 24

	// FakePingEnv switches every pinger to synthetic results when set to a true value
	FakePingEnv = "PINGER_FAKE_PING"
)

// FakePingEnabled reports whether the fake strategy was opted in through the environment
func FakePingEnabled() bool {
	v, ok := os.LookupEnv(FakePingEnv)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// UnmappedAddrFromSlice is the same as netip.AddrFromSlice but it also gets rid of mapped ipv6 addresses.
func UnmappedAddrFromSlice(slice []byte) (netip.Addr, bool) {
	addr, ok := netip.AddrFromSlice(slice)
	return addr.Unmap(), ok
}
