// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"errors"
	"fmt"
)

const (
	ipv4MinHeaderSize = 20
	protocolICMP      = 1
)

var (
	// ErrTooSmall is returned for buffers shorter than a minimal IPv4 header
	ErrTooSmall = errors.New("ipv4: packet too small")
	// ErrInvalidVersion is returned when the version nibble is not 4
	ErrInvalidVersion = errors.New("ipv4: invalid version")
	// ErrInvalidHeaderSize is returned when the IHL points past the end of the buffer
	ErrInvalidHeaderSize = errors.New("ipv4: invalid header size")
	// ErrUnknownProtocol is returned for any transport other than ICMP
	ErrUnknownProtocol = errors.New("ipv4: unknown protocol")
)

// IPv4Packet is the transport payload of an IPv4 packet read from a raw socket
type IPv4Packet struct {
	Protocol uint8
	Payload  []byte
}

// DecodeIPv4 validates the IPv4 header at the start of data and strips it.
// Only ICMP payloads are accepted. Payload aliases data.
func DecodeIPv4(data []byte) (IPv4Packet, error) {
	if len(data) < ipv4MinHeaderSize {
		return IPv4Packet{}, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(data))
	}
	if version := data[0] >> 4; version != 4 {
		return IPv4Packet{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	headerSize := int(data[0]&0x0f) * 4
	if headerSize > len(data) {
		return IPv4Packet{}, fmt.Errorf("%w: header is %d bytes, packet is %d", ErrInvalidHeaderSize, headerSize, len(data))
	}
	protocol := data[9]
	if protocol != protocolICMP {
		return IPv4Packet{}, fmt.Errorf("%w: %d", ErrUnknownProtocol, protocol)
	}
	return IPv4Packet{
		Protocol: protocol,
		Payload:  data[headerSize:],
	}, nil
}
