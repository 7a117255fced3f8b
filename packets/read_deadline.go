// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package packets

import (
	"time"
)

// pollTimeoutMillis converts a wait into poll(2) milliseconds, rounding up so
// a sub-millisecond wait doesn't turn into a busy loop
func pollTimeoutMillis(timeout time.Duration) int {
	const maxTimeout = 1000 * time.Millisecond
	if timeout <= 0 {
		return 0
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}
	return int((timeout + time.Millisecond - 1) / time.Millisecond)
}
