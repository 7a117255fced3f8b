// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"fmt"

	"golang.org/x/net/bpf"

	"github.com/DataDog/datadog-ping/icmp"
)

const acceptPacket = 0x00040000

// echoReplyFilter accepts IPv4 datagrams carrying an ICMP echo reply.
// The program runs on raw IPv4 sockets, so offset 0 is the IP header.
func echoReplyFilter() ([]bpf.RawInstruction, error) {
	prog, err := bpf.Assemble([]bpf.Instruction{
		// X = IHL*4
		bpf.LoadMemShift{Off: 0},
		// A = ICMP type
		bpf.LoadIndirect{Off: 0, Size: 1},
		bpf.JumpIf{Cond: bpf.JumpNotEqual, Val: uint32(icmp.V4.EchoReplyType), SkipTrue: 1},
		bpf.RetConstant{Val: acceptPacket},
		bpf.RetConstant{Val: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble echo reply filter: %w", err)
	}
	return prog, nil
}
