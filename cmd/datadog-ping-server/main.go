// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package main provides the ping HTTP server binary
package main

import (
	"log"
	"os"

	ddlog "github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/server"
	"github.com/spf13/cobra"
)

var (
	addr     string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "datadog-ping-server",
	Short: "Ping HTTP server",
	Long:  `HTTP server that runs bounded ping sessions via REST API endpoints`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := ddlog.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		ddlog.SetLogLevel(level)
		ddlog.EnabledLogging(verbose)

		srv := server.NewServer()

		log.Printf("Starting ping HTTP server on %s", addr)
		log.Printf("Log level set to: %s", logLevel)
		log.Printf("Example usage: curl 'http://localhost:3765/ping?target=google.com&protocol=tcp&port=443&count=5'")

		return srv.Start(addr)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":3765", "HTTP server address to listen on")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (error, warn, info, debug, trace)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "Log requests and ping failures (--verbose=false silences the logger)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
