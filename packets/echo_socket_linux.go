// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build linux

package packets

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/DataDog/datadog-ping/localaddr"
	"github.com/DataDog/datadog-ping/log"
)

func openRawSocket(domain int, protocol int) (int, error) {
	return unix.Socket(domain, unix.SOCK_RAW|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, protocol)
}

func bindToInterface(fd int, _ int, iface string) error {
	// fail early with a readable error when the link doesn't exist
	if _, err := localaddr.InterfaceIndex(iface); err != nil {
		return err
	}
	return unix.BindToDevice(fd, iface)
}

func attachEchoReplyFilter(fd int) error {
	prog, err := echoReplyFilter()
	if err != nil {
		return err
	}
	filter := make([]unix.SockFilter, len(prog))
	for i, ins := range prog {
		filter[i] = unix.SockFilter{Code: ins.Op, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}
	fprog := unix.SockFprog{Len: uint16(len(filter)), Filter: &filter[0]}
	if err := unix.SetsockoptSockFprog(fd, unix.SOL_SOCKET, unix.SO_ATTACH_FILTER, &fprog); err != nil {
		return fmt.Errorf("failed to attach BPF filter: %w", err)
	}
	return nil
}

// withRawCapability runs fn with CAP_NET_RAW in the effective set of the
// current thread, when it is permitted but not yet effective. The capability
// is dropped again before returning, even when fn fails.
func withRawCapability(fn func() error) error {
	// capabilities are per thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hdr := unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3}
	var data [2]unix.CapUserData
	if err := unix.Capget(&hdr, &data[0]); err != nil {
		log.Debugf("capget failed, not raising CAP_NET_RAW: %s", err)
		return fn()
	}

	idx, bit := unix.CAP_NET_RAW/32, uint32(1)<<(unix.CAP_NET_RAW%32)
	if data[idx].Effective&bit != 0 || data[idx].Permitted&bit == 0 {
		return fn()
	}

	data[idx].Effective |= bit
	if err := unix.Capset(&hdr, &data[0]); err != nil {
		log.Debugf("capset failed, not raising CAP_NET_RAW: %s", err)
		return fn()
	}
	log.Tracef("raised CAP_NET_RAW")
	defer func() {
		data[idx].Effective &^= bit
		if err := unix.Capset(&hdr, &data[0]); err != nil {
			log.Errorf("failed to drop CAP_NET_RAW: %s", err)
			return
		}
		log.Tracef("dropped CAP_NET_RAW")
	}()

	return fn()
}
