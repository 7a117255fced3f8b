// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package parser

import (
	"strings"

	"github.com/DataDog/datadog-ping/result"
)

// ParseLinux parses iputils and BusyBox output. Only iputils prints
// "no answer yet" lines, and only when run with -O.
func ParseLinux(line string) (result.PingResult, bool) {
	line = clean(line)
	switch {
	case strings.TrimSpace(line) == "":
		return result.PingResult{}, false
	case strings.HasPrefix(line, "PING "):
		return result.PingResult{}, false
	case strings.HasPrefix(line, "64 bytes from"):
		return pongOrUnknown(timeRe, line), true
	case strings.HasPrefix(line, "no answer yet"):
		return result.Timeout(line), true
	default:
		return result.Unknown(line), true
	}
}
