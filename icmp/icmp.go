// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package icmp encodes ICMP echo requests and decodes echo replies for both
// ICMPv4 and ICMPv6. The framing is identical for the two protocols; only the
// type/code constants differ, and they live in Proto.
package icmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// HeaderSize is the size of the echo header: type, code, checksum, identifier, sequence
const HeaderSize = 8

var (
	// ErrInvalidSize is returned when a buffer cannot hold an echo header (plus payload when encoding)
	ErrInvalidSize = errors.New("icmp: invalid buffer size")
	// ErrInvalidPacket is returned when the type/code is not the echo reply of the protocol
	ErrInvalidPacket = errors.New("icmp: not an echo reply")
)

// Proto is the type/code table of one ICMP flavor
type Proto struct {
	Name            string
	EchoRequestType uint8
	EchoRequestCode uint8
	EchoReplyType   uint8
	EchoReplyCode   uint8

	// Protocol is the IANA protocol number used to open the raw socket
	Protocol int
}

var (
	// V4 is ICMP for IPv4
	V4 = Proto{
		Name:            "icmpv4",
		EchoRequestType: uint8(ipv4.ICMPTypeEcho),
		EchoRequestCode: 0,
		EchoReplyType:   uint8(ipv4.ICMPTypeEchoReply),
		EchoReplyCode:   0,
		Protocol:        1,
	}
	// V6 is ICMP for IPv6
	V6 = Proto{
		Name:            "icmpv6",
		EchoRequestType: uint8(ipv6.ICMPTypeEchoRequest),
		EchoRequestCode: 0,
		EchoReplyType:   uint8(ipv6.ICMPTypeEchoReply),
		EchoReplyCode:   0,
		Protocol:        58,
	}
)

// ProtoFor picks the ICMP flavor matching the address family of addr
func ProtoFor(addr netip.Addr) Proto {
	if addr.Unmap().Is4() {
		return V4
	}
	return V6
}

func (p Proto) String() string {
	return p.Name
}

// EchoReply is a decoded echo reply. Payload aliases the decoded buffer.
type EchoReply struct {
	Identifier uint16
	Sequence   uint16
	Payload    []byte
}

// Checksum computes the internet checksum of b: the one's complement of the
// one's complement sum of its 16-bit big-endian words. An odd trailing byte
// is the high byte of a zero-padded word.
func Checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

// EncodeEchoRequest writes an echo request with the given identifier,
// sequence and payload into buf and returns the number of bytes written.
func (p Proto) EncodeEchoRequest(buf []byte, identifier, sequence uint16, payload []byte) (int, error) {
	size := HeaderSize + len(payload)
	if len(buf) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidSize, size, len(buf))
	}
	buf[0] = p.EchoRequestType
	buf[1] = p.EchoRequestCode
	buf[2] = 0
	buf[3] = 0
	binary.BigEndian.PutUint16(buf[4:], identifier)
	binary.BigEndian.PutUint16(buf[6:], sequence)
	copy(buf[HeaderSize:], payload)

	binary.BigEndian.PutUint16(buf[2:], Checksum(buf[:size]))
	return size, nil
}

// MarshalEchoRequest is EncodeEchoRequest into a freshly allocated buffer
func (p Proto) MarshalEchoRequest(identifier, sequence uint16, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	// the buffer is always large enough
	_, _ = p.EncodeEchoRequest(buf, identifier, sequence, payload)
	return buf
}

// DecodeEchoReply parses buf as an echo reply of this protocol. The kernel
// already verified the checksum.
func (p Proto) DecodeEchoReply(buf []byte) (EchoReply, error) {
	if len(buf) < HeaderSize {
		return EchoReply{}, fmt.Errorf("%w: got %d bytes", ErrInvalidSize, len(buf))
	}
	if buf[0] != p.EchoReplyType || buf[1] != p.EchoReplyCode {
		return EchoReply{}, fmt.Errorf("%w: %s type=%d code=%d", ErrInvalidPacket, p, buf[0], buf[1])
	}
	return EchoReply{
		Identifier: binary.BigEndian.Uint16(buf[4:]),
		Sequence:   binary.BigEndian.Uint16(buf[6:]),
		Payload:    buf[HeaderSize:],
	}, nil
}
