// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build linux

package localaddr

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

type linkByNameFunc func(name string) (netlink.Link, error)

var linkByName linkByNameFunc = netlink.LinkByName

func lookupIndex(name string) (int, error) {
	link, err := linkByName(name)
	if err != nil {
		return 0, fmt.Errorf("netlink link lookup failed: %w", err)
	}
	attrs := link.Attrs()
	if attrs == nil {
		return 0, fmt.Errorf("netlink returned no attributes")
	}
	return attrs.Index, nil
}
