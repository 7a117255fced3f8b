// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build !linux && !darwin

package packets

import (
	"net/netip"
	"time"
)

// EchoSocket is not available on this platform
type EchoSocket struct{}

var _ EchoConn = &EchoSocket{}

// NewEchoSocket always fails with ErrRawSocketUnsupported
func NewEchoSocket(netip.Addr, string) (*EchoSocket, error) {
	return nil, ErrRawSocketUnsupported
}

func (s *EchoSocket) Send([]byte, netip.Addr) error { return ErrRawSocketUnsupported }
func (s *EchoSocket) Poll(time.Duration) (bool, error) { return false, ErrRawSocketUnsupported }
func (s *EchoSocket) Recv([]byte) (int, netip.Addr, error) { return 0, netip.Addr{}, ErrRawSocketUnsupported }
func (s *EchoSocket) Wake() error { return nil }
func (s *EchoSocket) Close() error { return nil }
