// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package parser

import (
	"strings"

	"github.com/DataDog/datadog-ping/result"
)

// ParseBSD parses the output of FreeBSD, DragonFly, OpenBSD, NetBSD and macOS ping
func ParseBSD(line string) (result.PingResult, bool) {
	line = clean(line)
	switch {
	case strings.TrimSpace(line) == "":
		return result.PingResult{}, false
	case strings.HasPrefix(line, "PING "):
		return result.PingResult{}, false
	case strings.HasPrefix(line, "Request timeout"):
		return result.Timeout(line), true
	default:
		return pongOrUnknown(timeRe, line), true
	}
}
