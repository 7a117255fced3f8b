// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"net"
	"testing"

	"golang.org/x/net/bpf"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/require"
)

func makeIcmp4Packet(t *testing.T, typ uint8, options []layers.IPv4Option) []byte {
	ip4 := &layers.IPv4{
		Version:  4,
		TTL:      123,
		SrcIP:    net.ParseIP("127.0.0.1"),
		DstIP:    net.ParseIP("127.0.0.2"),
		Id:       41821,
		Protocol: layers.IPProtocolICMPv4,
		Options:  options,
	}
	icmp4 := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(typ, 0),
		Id:       77,
		Seq:      1,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	err := gopacket.SerializeLayers(buf, opts, ip4, icmp4, gopacket.Payload("DATADOG"))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestEchoReplyFilter(t *testing.T) {
	prog, err := echoReplyFilter()
	require.NoError(t, err)

	instructions := make([]bpf.Instruction, 0, len(prog))
	for _, raw := range prog {
		instructions = append(instructions, raw.Disassemble())
	}
	vm, err := bpf.NewVM(instructions)
	require.NoError(t, err)

	nopOptions := []layers.IPv4Option{{OptionType: 1}, {OptionType: 1}, {OptionType: 1}, {OptionType: 0}}

	tts := []struct {
		name   string
		packet []byte
		accept bool
	}{
		{name: "echo reply", packet: makeIcmp4Packet(t, layers.ICMPv4TypeEchoReply, nil), accept: true},
		{name: "echo reply with ip options", packet: makeIcmp4Packet(t, layers.ICMPv4TypeEchoReply, nopOptions), accept: true},
		{name: "echo request", packet: makeIcmp4Packet(t, layers.ICMPv4TypeEchoRequest, nil), accept: false},
		{name: "destination unreachable", packet: makeIcmp4Packet(t, layers.ICMPv4TypeDestinationUnreachable, nil), accept: false},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			n, err := vm.Run(tt.packet)
			require.NoError(t, err)
			if tt.accept {
				require.NotZero(t, n)
			} else {
				require.Zero(t, n)
			}
		})
	}
}
