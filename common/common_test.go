// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package common

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakePingEnabled(t *testing.T) {
	tts := []struct {
		value string
		set   bool
		want  bool
	}{
		{set: false, want: false},
		{value: "true", set: true, want: true},
		{value: "1", set: true, want: true},
		{value: "false", set: true, want: false},
		{value: "yes please", set: true, want: false},
	}
	for _, tt := range tts {
		t.Run(tt.value, func(t *testing.T) {
			if tt.set {
				t.Setenv(FakePingEnv, tt.value)
			} else {
				t.Setenv(FakePingEnv, "")
			}
			assert.Equal(t, tt.want, FakePingEnabled())
		})
	}
}

func TestUnmappedAddrFromSlice(t *testing.T) {
	addr, ok := UnmappedAddrFromSlice(net.ParseIP("192.0.2.1"))
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("192.0.2.1"), addr)
	assert.True(t, addr.Is4())

	addr, ok = UnmappedAddrFromSlice(net.ParseIP("2001:db8::1"))
	require.True(t, ok)
	assert.True(t, addr.Is6())

	_, ok = UnmappedAddrFromSlice([]byte{1, 2, 3})
	assert.False(t, ok)
}
