// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package localaddr resolves the local network interface a pinger is asked to
// bind to
package localaddr

import (
	"errors"
	"fmt"
)

// ErrNoInterface is returned when no interface name was given
var ErrNoInterface = errors.New("no interface name")

// Interface identifies a local network interface
type Interface struct {
	Name  string
	Index int
}

// InterfaceIndex looks up the interface called name
func InterfaceIndex(name string) (Interface, error) {
	if name == "" {
		return Interface{}, ErrNoInterface
	}
	idx, err := lookupIndex(name)
	if err != nil {
		return Interface{}, fmt.Errorf("interface %q: %w", name, err)
	}
	if idx <= 0 {
		return Interface{}, fmt.Errorf("interface %q has invalid index %d", name, idx)
	}
	return Interface{Name: name, Index: idx}, nil
}
