// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package tcp measures the time a TCP handshake takes
package tcp

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"syscall"
	"time"

	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/result"
)

// Config describes a single connect probe
type Config struct {
	Addr    netip.AddrPort
	Timeout time.Duration
	// AllowRST counts a refused connection (RST) as a reply
	AllowRST bool
	// Interface binds the socket to a device where the OS supports it
	Interface string
}

type dialFunc func(ctx context.Context, d *net.Dialer, addr string) (net.Conn, error)

var dialFn dialFunc = func(ctx context.Context, d *net.Dialer, addr string) (net.Conn, error) {
	return d.DialContext(ctx, "tcp", addr)
}

var now = time.Now

// Probe opens one connection to cfg.Addr and classifies the outcome:
// an established connection is a Pong, a refused one is a Pong only when
// AllowRST is set, and anything else is a Timeout.
func Probe(ctx context.Context, cfg Config) result.PingResult {
	addr := cfg.Addr.String()
	dialer := &net.Dialer{
		Timeout: cfg.Timeout,
		Control: bindControl(cfg.Interface),
	}

	start := now()
	conn, err := dialFn(ctx, dialer, addr)
	elapsed := now().Sub(start)

	if err == nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Tracef("tcp: close %s: %s", addr, closeErr)
		}
		return result.Pong(elapsed, addr)
	}

	if cfg.AllowRST && IsConnRefused(err) {
		log.Tracef("tcp: %s refused the connection, counting it as a reply", addr)
		return result.Pong(elapsed, addr)
	}
	log.Tracef("tcp: connect to %s failed: %s", addr, err)
	return result.Timeout(addr)
}

// IsConnRefused reports whether err is an ECONNREFUSED anywhere in its chain
func IsConnRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
