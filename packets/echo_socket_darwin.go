// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build darwin

package packets

import (
	"golang.org/x/sys/unix"

	"github.com/DataDog/datadog-ping/localaddr"
)

func openRawSocket(domain int, protocol int) (int, error) {
	fd, err := unix.Socket(domain, unix.SOCK_RAW, protocol)
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func bindToInterface(fd int, domain int, iface string) error {
	link, err := localaddr.InterfaceIndex(iface)
	if err != nil {
		return err
	}
	if domain == unix.AF_INET {
		return unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_BOUND_IF, link.Index)
	}
	return unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_BOUND_IF, link.Index)
}

// darwin raw sockets can't carry socket filters
func attachEchoReplyFilter(int) error {
	return nil
}

// raw sockets need root on darwin, there is no capability to raise
func withRawCapability(fn func() error) error {
	return fn()
}
