// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package cache implements typed in-memory stores with expiration
package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultPurge = 30 * time.Second

// NoExpiration keeps entries until Flush
const NoExpiration = cache.NoExpiration

// Store is a typed key:value store. Values are kept for the TTL given to New
// unless GetOrSetWithExpiration overrides it.
type Store[T any] struct {
	c   *cache.Cache
	ttl time.Duration
}

// New returns an empty store whose entries expire after ttl
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		c:   cache.New(ttl, defaultPurge),
		ttl: ttl,
	}
}

// Get returns the cached value for key, if any
func (s *Store[T]) Get(key string) (T, bool) {
	if x, found := s.c.Get(key); found {
		return x.(T), true
	}
	var zero T
	return zero, false
}

// GetOrSet returns the value for 'key'.
//
// cache hit:
//
//	pull the value from the cache and returns it.
//
// cache miss:
//
//	call 'cb' function to get a new value. If the callback doesn't return an error the returned value is
//	cached with the store TTL and returned.
func (s *Store[T]) GetOrSet(key string, cb func() (T, error)) (T, error) {
	return s.GetOrSetWithExpiration(key, cb, s.ttl)
}

// GetOrSetWithExpiration is GetOrSet with a per-entry expiration
func (s *Store[T]) GetOrSetWithExpiration(key string, cb func() (T, error), expire time.Duration) (T, error) {
	if x, found := s.Get(key); found {
		return x, nil
	}

	res, err := cb()
	// We don't cache errors
	if err == nil {
		s.c.Set(key, res, expire)
	}
	return res, err
}

// Set stores value for the store TTL
func (s *Store[T]) Set(key string, value T) {
	s.c.Set(key, value, s.ttl)
}

// Len counts entries, including expired ones not purged yet
func (s *Store[T]) Len() int {
	return s.c.ItemCount()
}

// Flush removes every entry
func (s *Store[T]) Flush() {
	s.c.Flush()
}
