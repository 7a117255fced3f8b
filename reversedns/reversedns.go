// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package reversedns labels probed addresses with their PTR names
package reversedns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/DataDog/datadog-ping/cache"
)

const (
	reverseDnsDefaultTimeout = 5 * time.Second
	reverseDnsCacheTTL       = 10 * time.Minute
)

// LookupAddrFn is defined as variable to ease testing
var LookupAddrFn = net.DefaultResolver.LookupAddr

var names = cache.New[[]string](reverseDnsCacheTTL)

// GetReverseDNS returns the PTR names of addr without their trailing dot.
// Successful lookups are cached.
func GetReverseDNS(ctx context.Context, addr netip.Addr) ([]string, error) {
	if !addr.IsValid() {
		return nil, errors.New("invalid IP address")
	}
	ip := addr.Unmap().String()
	return names.GetOrSet(ip, func() ([]string, error) {
		return lookup(ctx, ip)
	})
}

func lookup(ctx context.Context, ip string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, reverseDnsDefaultTimeout)
	defer cancel()
	rawReverseDnsNames, err := LookupAddrFn(ctx, ip)
	if err != nil {
		return nil, fmt.Errorf("failed to get reverse dns: %w", err)
	}

	reverseDnsNames := []string{}
	for _, name := range rawReverseDnsNames {
		reverseDnsNames = append(reverseDnsNames, strings.TrimRight(name, "."))
	}
	return reverseDnsNames, nil
}

// Flush drops every cached name
func Flush() {
	names.Flush()
}
