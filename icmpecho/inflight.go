// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package icmpecho

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/DataDog/datadog-ping/common"
)

// Token is the random payload that ties an echo reply to its request
type Token [common.TokenSize]byte

// NewToken returns a random token
func NewToken() Token {
	var tok Token
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(tok[:])
	return tok
}

// TokenFromBytes accepts exactly TokenSize bytes
func TokenFromBytes(b []byte) (Token, bool) {
	var tok Token
	if len(b) != len(tok) {
		return tok, false
	}
	copy(tok[:], b)
	return tok, true
}

func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

// InFlight maps the token of every unanswered echo request to its send time.
// It holds at most bound entries: inserting past the bound evicts the oldest.
type InFlight struct {
	// mu guards entries, it is never held across I/O
	mu      sync.Mutex
	bound   int
	entries map[Token]time.Time
}

func NewInFlight(bound int) *InFlight {
	if bound < 1 {
		bound = 1
	}
	return &InFlight{
		bound:   bound,
		entries: make(map[Token]time.Time, bound+1),
	}
}

// Insert records tok as sent at sentAt and returns how many entries were evicted
func (f *InFlight) Insert(tok Token, sentAt time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[tok] = sentAt
	evicted := 0
	for len(f.entries) > f.bound {
		f.evictOldest()
		evicted++
	}
	return evicted
}

// evictOldest is a linear scan, the table is tiny
func (f *InFlight) evictOldest() {
	var oldest Token
	var oldestAt time.Time
	first := true
	for tok, at := range f.entries {
		if first || at.Before(oldestAt) {
			oldest, oldestAt, first = tok, at, false
		}
	}
	delete(f.entries, oldest)
}

// Take removes tok and returns its send time
func (f *InFlight) Take(tok Token) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	at, ok := f.entries[tok]
	if ok {
		delete(f.entries, tok)
	}
	return at, ok
}

// Contains reports whether tok is still waiting for a reply
func (f *InFlight) Contains(tok Token) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.entries[tok]
	return ok
}

func (f *InFlight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.entries)
}
