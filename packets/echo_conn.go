// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"errors"
	"net/netip"
	"time"
)

// ErrWouldBlock is returned by Recv when no datagram is queued
var ErrWouldBlock = errors.New("operation would block")

// ErrRawSocketUnsupported is returned on platforms without raw ICMP sockets
var ErrRawSocketUnsupported = errors.New("raw socket cannot be used with this OS")

//go:generate mockgen -source=echo_conn.go -destination=mock_echo_conn.go -package=packets

// EchoConn is a raw ICMP socket paired with a wake-up descriptor
type EchoConn interface {
	// Send writes an ICMP packet (no IP header) to dst
	Send(buf []byte, dst netip.Addr) error
	// Poll waits until a datagram is readable, Wake is called or timeout
	// elapses. It only reports true in the first case.
	Poll(timeout time.Duration) (bool, error)
	// Recv reads one datagram and returns its unmapped source address.
	// IPv4 datagrams still carry their IP header.
	Recv(buf []byte) (int, netip.Addr, error)
	// Wake interrupts a concurrent Poll
	Wake() error
	// Close releases the socket and the wake descriptors
	Close() error
}
