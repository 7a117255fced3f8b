// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package pinger

import "fmt"

// Kind selects how a Pinger produces results
type Kind int

const (
	// KindIPTools runs the iputils ping binary
	KindIPTools Kind = iota + 1
	// KindBusyBox runs the BusyBox applet, which has no -O flag
	KindBusyBox
	KindBSD
	KindMacOS
	KindWindows
	// KindRawICMP sends echo requests on a raw socket, no binary involved
	KindRawICMP
	// KindTCP times TCP handshakes
	KindTCP
	// KindFake emits synthetic pongs, it never touches the network
	KindFake
)

var kindNames = map[Kind]string{
	KindIPTools: "iputils",
	KindBusyBox: "busybox",
	KindBSD:     "bsd",
	KindMacOS:   "macos",
	KindWindows: "windows",
	KindRawICMP: "raw-icmp",
	KindTCP:     "tcp",
	KindFake:    "fake",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets a Kind be reported as the strategy of a session
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// spawnsProcess reports whether the strategy shells out to a ping binary
func (k Kind) spawnsProcess() bool {
	switch k {
	case KindIPTools, KindBusyBox, KindBSD, KindMacOS:
		return true
	default:
		return false
	}
}
