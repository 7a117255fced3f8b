// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/runner"
	"github.com/DataDog/datadog-ping/target"
)

func TestParsePingParams(t *testing.T) {
	tests := []struct {
		name        string
		queryString string
		wantErr     bool
		checkFunc   func(*testing.T, runner.Params)
	}{
		{
			name:        "missing target",
			queryString: "",
			wantErr:     true,
		},
		{
			name:        "basic target only",
			queryString: "target=google.com",
			checkFunc: func(t *testing.T, p runner.Params) {
				assert.Equal(t, "google.com", p.Hostname)
				assert.Equal(t, common.DefaultProtocol, p.Protocol)
				assert.Equal(t, uint16(common.DefaultTCPPort), p.Port)
				assert.Equal(t, common.DefaultServerCount, p.Count)
				assert.Equal(t, common.DefaultInterval, p.Interval)
				assert.Equal(t, time.Second+timeoutSlack, p.Timeout)
				assert.Equal(t, target.FamilyAny, p.Family)
				assert.False(t, p.ReverseDns)
			},
		},
		{
			name:        "ipv6 with reverse dns and interface",
			queryString: "target=example.com&ipv6=true&reverse-dns&interface=eth0&protocol=raw&timeout=2500",
			checkFunc: func(t *testing.T, p runner.Params) {
				assert.Equal(t, target.FamilyV6, p.Family)
				assert.True(t, p.ReverseDns)
				assert.Equal(t, "eth0", p.Interface)
				assert.Equal(t, "raw", p.Protocol)
				assert.Equal(t, 2500*time.Millisecond, p.Timeout)
			},
		},
		{
			name:        "count too large",
			queryString: "target=example.com&count=101",
			wantErr:     true,
		},
		{
			name:        "count zero",
			queryString: "target=example.com&count=0",
			wantErr:     true,
		},
		{
			name:        "count not a number",
			queryString: "target=example.com&count=five",
			wantErr:     true,
		},
		{
			name:        "port out of range",
			queryString: "target=example.com&protocol=tcp&port=70000",
			wantErr:     true,
		},
		{
			name:        "negative interval",
			queryString: "target=example.com&interval=-5",
			wantErr:     true,
		},
		{
			name:        "both families",
			queryString: "target=example.com&ipv4=true&ipv6=true",
			wantErr:     true,
		},
		{
			name:        "bad boolean",
			queryString: "target=example.com&allow-rst=maybe",
			wantErr:     true,
		},
	}

	srv := NewServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping?"+tt.queryString, nil)
			params, err := srv.parsePingParams(req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, params)
			}
		})
	}
}

func TestHelperFunctions(t *testing.T) {
	query := map[string][]string{
		"str":      {"value"},
		"int":      {"42"},
		"badint":   {"x"},
		"bool":     {"false"},
		"flag":     {""},
		"duration": {"250"},
	}

	assert.Equal(t, "value", getStringParam(query, "str", "default"))
	assert.Equal(t, "default", getStringParam(query, "missing", "default"))

	v, err := getIntParam(query, "int", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	v, err = getIntParam(query, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	_, err = getIntParam(query, "badint", 1)
	assert.Error(t, err)

	b, err := getBoolParam(query, "bool", true)
	require.NoError(t, err)
	assert.False(t, b)
	b, err = getBoolParam(query, "flag", false)
	require.NoError(t, err)
	assert.True(t, b)

	d, err := getDurationParam(query, "duration", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
	d, err = getDurationParam(query, "missing", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}
