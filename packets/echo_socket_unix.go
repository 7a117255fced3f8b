// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build linux || darwin

package packets

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"golang.org/x/sys/unix"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/icmp"
	"github.com/DataDog/datadog-ping/log"
)

const socketTimeout = 100 * time.Millisecond

// EchoSocket is the EchoConn of Linux and macOS: a non-blocking raw ICMP
// socket and a self-pipe used to interrupt Poll
type EchoSocket struct {
	fd    int
	wakeR int
	wakeW int
}

var _ EchoConn = &EchoSocket{}

// NewEchoSocket opens a raw ICMPv4 or ICMPv6 socket matching the family of
// dst, optionally bound to iface. CAP_NET_RAW is only raised while the socket
// is being created.
func NewEchoSocket(dst netip.Addr, iface string) (*EchoSocket, error) {
	proto := icmp.ProtoFor(dst)
	domain := unix.AF_INET6
	if proto == icmp.V4 {
		domain = unix.AF_INET
	}

	var fd int
	err := withRawCapability(func() error {
		var err error
		fd, err = openRawSocket(domain, proto.Protocol)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create raw %s socket: %w", proto, err)
	}

	if err := configureEchoSocket(fd, domain, iface); err != nil {
		unix.Close(fd)
		return nil, err
	}

	var pipe [2]int
	if err := unix.Pipe(pipe[:]); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to create wake pipe: %w", err)
	}
	for _, p := range pipe {
		if err := unix.SetNonblock(p, true); err != nil {
			unix.Close(fd)
			unix.Close(pipe[0])
			unix.Close(pipe[1])
			return nil, fmt.Errorf("failed to configure wake pipe: %w", err)
		}
		unix.CloseOnExec(p)
	}

	return &EchoSocket{fd: fd, wakeR: pipe[0], wakeW: pipe[1]}, nil
}

func configureEchoSocket(fd int, domain int, iface string) error {
	tv := unix.NsecToTimeval(socketTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_SNDTIMEO, &tv); err != nil {
		return fmt.Errorf("failed to set write timeout: %w", err)
	}
	if iface != "" {
		if err := bindToInterface(fd, domain, iface); err != nil {
			return fmt.Errorf("failed to bind to interface %q: %w", iface, err)
		}
	}
	if domain == unix.AF_INET {
		// replies are still matched by token without the filter
		if err := attachEchoReplyFilter(fd); err != nil {
			log.Debugf("echo socket: running without BPF filter: %s", err)
		}
	}
	return nil
}

// Send writes buf to dst
func (s *EchoSocket) Send(buf []byte, dst netip.Addr) error {
	sa, err := getSockAddr(dst.Unmap())
	if err != nil {
		return err
	}
	if err := unix.Sendto(s.fd, buf, 0, sa); err != nil {
		if isWouldBlock(err) {
			return fmt.Errorf("send to %s: %w", dst, ErrWouldBlock)
		}
		return fmt.Errorf("send to %s: %w", dst, err)
	}
	return nil
}

// Poll waits for the socket to become readable or for Wake
func (s *EchoSocket) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.wakeR), Events: unix.POLLIN},
	}
	_, err := unix.Poll(fds, pollTimeoutMillis(timeout))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("poll failed: %w", err)
	}
	if fds[1].Revents&unix.POLLIN != 0 {
		s.drainWake()
		return false, nil
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLERR) != 0, nil
}

// Recv reads the next datagram, or returns ErrWouldBlock
func (s *EchoSocket) Recv(buf []byte) (int, netip.Addr, error) {
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		if isWouldBlock(err) || errors.Is(err, unix.EINTR) {
			return 0, netip.Addr{}, ErrWouldBlock
		}
		return 0, netip.Addr{}, fmt.Errorf("recvfrom failed: %w", err)
	}
	return n, sockAddrToAddr(from), nil
}

// sockAddrToAddr returns the zero Addr for anything but an inet sockaddr
func sockAddrToAddr(sa unix.Sockaddr) netip.Addr {
	var slice []byte
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		slice = sa.Addr[:]
	case *unix.SockaddrInet6:
		slice = sa.Addr[:]
	default:
		return netip.Addr{}
	}
	addr, _ := common.UnmappedAddrFromSlice(slice)
	return addr
}

// Wake makes a pending or upcoming Poll return
func (s *EchoSocket) Wake() error {
	_, err := unix.Write(s.wakeW, []byte{1})
	if err != nil && !isWouldBlock(err) {
		return fmt.Errorf("failed to write wake pipe: %w", err)
	}
	return nil
}

func (s *EchoSocket) drainWake() {
	var buf [16]byte
	for {
		if _, err := unix.Read(s.wakeR, buf[:]); err != nil {
			return
		}
	}
}

// Close closes the socket and the wake pipe
func (s *EchoSocket) Close() error {
	return errors.Join(
		unix.Close(s.fd),
		unix.Close(s.wakeR),
		unix.Close(s.wakeW),
	)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func getSockAddr(addr netip.Addr) (unix.Sockaddr, error) {
	switch {
	case addr.Is4():
		var sa4 unix.SockaddrInet4
		sa4.Addr = addr.As4()
		return &sa4, nil
	case addr.Is6():
		var sa6 unix.SockaddrInet6
		sa6.Addr = addr.As16()
		return &sa6, nil
	default:
		return nil, fmt.Errorf("invalid IP address %q", addr)
	}
}
