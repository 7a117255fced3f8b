// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DataDog/datadog-ping/common"
	"github.com/DataDog/datadog-ping/log"
	"github.com/DataDog/datadog-ping/runner"
)

type args struct {
	wantV4        bool
	wantV6        bool
	iface         string
	watchInterval float64
	tcp           bool
	raw           bool
	port          int
	allowRST      bool
	commands      []string
	count         int
	timeout       int
	pingArgs      []string
	reverseDns    bool
	verbose       bool
	logLevel      string
	json          bool
}

var Args args

var rootCmd = &cobra.Command{
	Use:   "datadog-ping [hosts...]",
	Short: "Ping one or more hosts and report their round-trip times",
	Long: `Ping one or more hosts with the platform ping binary, a raw ICMP socket or TCP
connections, and print every reply as it arrives followed by a summary.
With --cmd, time shell commands instead of pinging hosts.`,
	RunE: func(cmd *cobra.Command, hosts []string) error {
		level, err := log.ParseLogLevel(Args.logLevel)
		if err != nil {
			return err
		}
		log.SetLogLevel(level)
		log.SetVerbose(Args.verbose)

		params, err := buildParams(hosts, Args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := newPrinter(cmd.OutOrStdout(), Args.json)
		sessions, err := runner.RunMulti(ctx, params, p.onResult)
		if err != nil {
			return err
		}
		return p.summary(sessions)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&Args.wantV4, "ipv4", "4", false, "Resolve hostnames to IPv4 only")
	rootCmd.Flags().BoolVarP(&Args.wantV6, "ipv6", "6", common.DefaultWantV6, "Resolve hostnames to IPv6 only")
	rootCmd.Flags().StringVarP(&Args.iface, "interface", "i", "", "Interface to ping through")
	rootCmd.Flags().Float64VarP(&Args.watchInterval, "watch-interval", "n", 0, fmt.Sprintf("Seconds between probes (default %s, %s with --cmd)", common.DefaultInterval, common.DefaultCommandInterval))
	rootCmd.Flags().BoolVarP(&Args.tcp, "tcp", "", false, "Time TCP connections instead of sending ICMP echoes")
	rootCmd.Flags().BoolVarP(&Args.raw, "raw", "", false, "Send ICMP echoes on a raw socket instead of running ping")
	rootCmd.Flags().IntVarP(&Args.port, "port", "p", common.DefaultTCPPort, "Destination port with --tcp")
	rootCmd.Flags().BoolVarP(&Args.allowRST, "allow-rst", "", common.DefaultAllowRST, "With --tcp, count a refused connection as a reply")
	rootCmd.Flags().StringArrayVarP(&Args.commands, "cmd", "", nil, "Time this shell command instead of pinging (repeatable)")
	rootCmd.Flags().IntVarP(&Args.count, "count", "c", common.DefaultCount, "Stop after this many replies or timeouts per host (0 runs until interrupted)")
	rootCmd.Flags().IntVarP(&Args.timeout, "timeout", "", 0, "Stop after this many milliseconds (0 means no limit)")
	rootCmd.Flags().StringArrayVarP(&Args.pingArgs, "ping-args", "", nil, "Extra argument passed to the ping binary (repeatable)")
	rootCmd.Flags().BoolVarP(&Args.reverseDns, "reverse-dns", "", common.DefaultReverseDns, "Enrich targets with reverse DNS names")
	rootCmd.Flags().BoolVarP(&Args.verbose, "verbose", "v", false, "verbose")
	rootCmd.Flags().StringVarP(&Args.logLevel, "log-level", "l", "info", "Log level (error, warn, info, debug, trace)")
	rootCmd.Flags().BoolVarP(&Args.json, "json", "", false, "Print the sessions as JSON once done")
}
