// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package icmpecho sends ICMP echo requests on a raw socket and matches the
// replies back to their requests through a random payload token.
package icmpecho

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/netip"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/icmp"
	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/packets"
	"github.com/DataDog/datadog-ping/result"
)

const (
	recvBufferSize = 1500
	// maxPollBackoff caps the pause after a failed poll
	maxPollBackoff = 100 * time.Millisecond
	// maxDrainBatch bounds the datagrams read per wake-up so that unrelated
	// ICMP traffic cannot hold off the next send
	maxDrainBatch = 32
)

// Engine drives one raw echo session against a single destination. Run is
// meant to be called from exactly one goroutine; Stop may be called from any.
type Engine struct {
	conn     packets.EchoConn
	dst      netip.Addr
	proto    icmp.Proto
	interval time.Duration
	inFlight *InFlight

	alive atomic.Bool
	seq   uint16

	now           func() time.Time
	newToken      func() Token
	newIdentifier func() uint16
}

// NewEngine takes ownership of conn, it is closed by Close
func NewEngine(conn packets.EchoConn, dst netip.Addr, interval time.Duration) (*Engine, error) {
	if !dst.IsValid() {
		return nil, fmt.Errorf("invalid destination address")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	dst = dst.Unmap()
	e := &Engine{
		conn:          conn,
		dst:           dst,
		proto:         icmp.ProtoFor(dst),
		interval:      interval,
		inFlight:      NewInFlight(common.MaxInFlight),
		now:           time.Now,
		newToken:      NewToken,
		newIdentifier: func() uint16 { return uint16(rand.Uint32()) },
	}
	e.alive.Store(true)
	return e, nil
}

// Destination returns the unmapped address the engine probes
func (e *Engine) Destination() netip.Addr {
	return e.dst
}

// Run sends one echo request per interval and hands every matched reply to
// emit. It returns when Stop is called or when emit returns false.
func (e *Engine) Run(emit func(result.PingResult) bool) {
	buf := make([]byte, recvBufferSize)
	nextSend := e.now()

	for e.alive.Load() {
		if now := e.now(); !now.Before(nextSend) {
			e.send()
			nextSend = now.Add(e.interval)
		}

		wait := nextSend.Sub(e.now())
		readable, err := e.conn.Poll(wait)
		if !e.alive.Load() {
			return
		}
		if err != nil {
			log.Debugf("icmpecho: poll failed: %s", err)
			time.Sleep(min(max(wait, 0), maxPollBackoff))
			continue
		}
		if readable && !e.drain(buf, emit) {
			return
		}
	}
}

func (e *Engine) send() {
	tok := e.newToken()
	e.seq++
	pkt := e.proto.MarshalEchoRequest(e.newIdentifier(), e.seq, tok[:])

	sentAt := e.now()
	if err := e.conn.Send(pkt, e.dst); err != nil {
		log.Debugf("icmpecho: send to %s failed: %s", e.dst, err)
		return
	}
	if evicted := e.inFlight.Insert(tok, sentAt); evicted > 0 {
		log.Tracef("icmpecho: evicted %d unanswered request(s)", evicted)
	}
}

// drain reads until the socket would block or maxDrainBatch datagrams were
// read. It returns false once emit refuses a result.
func (e *Engine) drain(buf []byte, emit func(result.PingResult) bool) bool {
	for range maxDrainBatch {
		n, src, err := e.conn.Recv(buf)
		if errors.Is(err, packets.ErrWouldBlock) {
			return true
		}
		if err != nil {
			log.Debugf("icmpecho: recv failed: %s", err)
			return true
		}
		res, ok := e.handle(buf[:n], src)
		if !ok {
			continue
		}
		if !emit(res) {
			return false
		}
	}
	return true
}

func (e *Engine) handle(datagram []byte, src netip.Addr) (result.PingResult, bool) {
	receivedAt := e.now()
	if src.WithZone("") != e.dst.WithZone("") {
		log.Tracef("icmpecho: dropping datagram from %s", src)
		return result.PingResult{}, false
	}

	icmpData := datagram
	if e.proto == icmp.V4 {
		pkt, err := packets.DecodeIPv4(datagram)
		if err != nil {
			log.Tracef("icmpecho: dropping datagram: %s", err)
			return result.PingResult{}, false
		}
		icmpData = pkt.Payload
	}

	reply, err := e.proto.DecodeEchoReply(icmpData)
	if err != nil {
		log.Tracef("icmpecho: dropping datagram: %s", err)
		return result.PingResult{}, false
	}
	tok, ok := TokenFromBytes(reply.Payload)
	if !ok {
		return result.PingResult{}, false
	}
	sentAt, ok := e.inFlight.Take(tok)
	if !ok {
		log.Tracef("icmpecho: no request in flight for token %s", tok)
		return result.PingResult{}, false
	}
	return result.Pong(receivedAt.Sub(sentAt), e.dst.String()), true
}

// Stop makes Run return promptly. It is safe to call more than once.
func (e *Engine) Stop() {
	if !e.alive.Swap(false) {
		return
	}
	if err := e.conn.Wake(); err != nil {
		log.Debugf("icmpecho: wake failed: %s", err)
	}
}

// Close releases the socket. Call it after Run has returned.
func (e *Engine) Close() error {
	return e.conn.Close()
}
