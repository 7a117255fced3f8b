// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package e2etests contains end-to-end tests for datadog-ping. They build the
// CLI and the HTTP server, then run them against synthetic results (fake
// strategy), a local TCP listener and the command watcher.
package e2etests
