// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

//go:build !linux

package tcp

import (
	"syscall"

	"github.com/DataDog/datadog-ping/log"
)

func bindControl(iface string) func(network, address string, c syscall.RawConn) error {
	if iface != "" {
		log.Debugf("tcp: binding to interface %s is only supported on linux, ignoring it", iface)
	}
	return nil
}
