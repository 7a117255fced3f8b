// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package server exposes bounded ping sessions over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/pinger"
	"github.com/DataDog/datadog-ping/result"
	"github.com/DataDog/datadog-ping/runner"
	"github.com/DataDog/datadog-ping/target"
)

const (
	// MaxCount bounds the probes of a single request
	MaxCount = 100
	// timeoutSlack is added to count*interval to build the default timeout
	timeoutSlack      = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type runFunc func(ctx context.Context, params runner.Params, onResult func(result.PingResult)) (*result.Session, error)

// Server is the HTTP server for the ping API
type Server struct {
	run       runFunc
	startedAt time.Time
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// NewServer creates a new HTTP server backed by runner.Run
func NewServer() *Server {
	return &Server{
		run:       runner.Run,
		startedAt: time.Now(),
	}
}

// PingHandler handles GET /ping requests
func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := s.parsePingParams(r)
	if err != nil {
		writeError(w, &InvalidRequestError{Err: err})
		return
	}

	session, err := s.run(r.Context(), params, nil)
	if err != nil {
		log.Debugf("ping %s failed: %s", params.Hostname, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(session); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}

// HealthHandler handles GET and HEAD /health requests
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debugf("failed to encode health response: %s", err)
	}
}

// parsePingParams extracts and validates query parameters from the HTTP request
func (s *Server) parsePingParams(r *http.Request) (runner.Params, error) {
	query := r.URL.Query()

	hostname := query.Get("target")
	if hostname == "" {
		return runner.Params{}, errors.New("missing required parameter: target")
	}

	protocol := getStringParam(query, "protocol", common.DefaultProtocol)
	if _, err := pinger.ParseProtocol(protocol); err != nil {
		return runner.Params{}, err
	}

	count, err := getIntParam(query, "count", common.DefaultServerCount)
	if err != nil {
		return runner.Params{}, err
	}
	if count < 1 || count > MaxCount {
		return runner.Params{}, fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, count)
	}

	port, err := getIntParam(query, "port", common.DefaultTCPPort)
	if err != nil {
		return runner.Params{}, err
	}
	if port < 1 || port > 65535 {
		return runner.Params{}, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}

	interval, err := getDurationParam(query, "interval", common.DefaultInterval)
	if err != nil {
		return runner.Params{}, err
	}
	timeout, err := getDurationParam(query, "timeout", time.Duration(count)*interval+timeoutSlack)
	if err != nil {
		return runner.Params{}, err
	}

	wantV4, err := getBoolParam(query, "ipv4", false)
	if err != nil {
		return runner.Params{}, err
	}
	wantV6, err := getBoolParam(query, "ipv6", common.DefaultWantV6)
	if err != nil {
		return runner.Params{}, err
	}
	if wantV4 && wantV6 {
		return runner.Params{}, errors.New("ipv4 and ipv6 are mutually exclusive")
	}
	family := target.FamilyAny
	switch {
	case wantV4:
		family = target.FamilyV4
	case wantV6:
		family = target.FamilyV6
	}

	allowRST, err := getBoolParam(query, "allow-rst", common.DefaultAllowRST)
	if err != nil {
		return runner.Params{}, err
	}
	reverseDns, err := getBoolParam(query, "reverse-dns", common.DefaultReverseDns)
	if err != nil {
		return runner.Params{}, err
	}

	return runner.Params{
		Hostname:   hostname,
		Family:     family,
		Protocol:   protocol,
		Interval:   interval,
		Port:       uint16(port),
		AllowRST:   allowRST,
		Interface:  getStringParam(query, "interface", ""),
		Count:      count,
		Timeout:    timeout,
		ReverseDns: reverseDns,
	}, nil
}

// Handler routes /ping and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", s.PingHandler)
	mux.HandleFunc("/health", s.HealthHandler)
	return mux
}

// Start starts the HTTP server on the specified address
func (s *Server) Start(addr string) error {
	log.Debugf("Starting HTTP server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv.ListenAndServe()
}
