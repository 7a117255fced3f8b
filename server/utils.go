// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package server

import (
	"fmt"
	"strconv"
	"time"
)

// Helper functions for parsing query parameters. Malformed numbers and
// booleans are rejected instead of silently replaced by the default.

func getStringParam(query map[string][]string, key string, defaultValue string) string {
	if values, ok := query[key]; ok && len(values) > 0 {
		return values[0]
	}
	return defaultValue
}

func getIntParam(query map[string][]string, key string, defaultValue int) (int, error) {
	if values, ok := query[key]; ok && len(values) > 0 {
		val, err := strconv.Atoi(values[0])
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", key, values[0])
		}
		return val, nil
	}
	return defaultValue, nil
}

func getBoolParam(query map[string][]string, key string, defaultValue bool) (bool, error) {
	if values, ok := query[key]; ok && len(values) > 0 {
		if values[0] == "" {
			return true, nil
		}
		val, err := strconv.ParseBool(values[0])
		if err != nil {
			return false, fmt.Errorf("%s must be a boolean, got %q", key, values[0])
		}
		return val, nil
	}
	return defaultValue, nil
}

// getDurationParam reads a number of milliseconds
func getDurationParam(query map[string][]string, key string, defaultValue time.Duration) (time.Duration, error) {
	ms, err := getIntParam(query, key, int(defaultValue/time.Millisecond))
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
