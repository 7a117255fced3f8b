// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package parser turns lines printed by the platform ping binaries into
// results. Every parser is a pure function: it returns false for lines that
// carry no event (banners, blank lines), a Timeout when the line reports a
// missed reply, a Pong when it carries a time= measurement and Unknown for
// anything else.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/DataDog/datadog-ping/result"
)

// Func parses one line of ping output
type Func func(line string) (result.PingResult, bool)

var timeRe = regexp.MustCompile(`time=(?P<ms>\d+)(?:\.(?P<ns>\d+))?\s*ms`)

const maxFractionDigits = 6

// extractTime reads the ms and ns groups of re. The fraction is scaled by its
// digit count: "23.1" is 23ms + 1*10^5ns, "8.91" is 8ms + 91*10^4ns.
func extractTime(re *regexp.Regexp, line string) (time.Duration, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	ms, err := strconv.ParseInt(m[re.SubexpIndex("ms")], 10, 64)
	if err != nil {
		return 0, false
	}
	rtt := time.Duration(ms) * time.Millisecond

	frac := m[re.SubexpIndex("ns")]
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	if frac != "" {
		ns, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		for i := len(frac); i < maxFractionDigits; i++ {
			ns *= 10
		}
		rtt += time.Duration(ns)
	}
	return rtt, true
}

func pongOrUnknown(re *regexp.Regexp, line string) result.PingResult {
	if rtt, ok := extractTime(re, line); ok {
		return result.Pong(rtt, line)
	}
	return result.Unknown(line)
}

func clean(line string) string {
	return strings.TrimRight(line, "\r\n")
}
