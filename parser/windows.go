// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package parser

import (
	"regexp"
	"strings"

	"github.com/DataDog/datadog-ping/result"
)

var windowsTimeRe = regexp.MustCompile(`(?i)time=(?P<ms>\d+)(?:\.(?P<ns>\d+))?`)

// ParseWindows parses the output of ping.exe run with the C locale
func ParseWindows(line string) (result.PingResult, bool) {
	line = clean(line)
	switch {
	case strings.TrimSpace(line) == "":
		return result.PingResult{}, false
	case strings.Contains(line, "timed out"), strings.Contains(line, "failure"):
		return result.Timeout(line), true
	default:
		return pongOrUnknown(windowsTimeRe, line), true
	}
}
