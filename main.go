// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

// Command datadog-ping pings hosts and prints their round-trip times
package main

import "github.com/DataDog/datadog-ping/cmd"

func main() {
	cmd.Execute()
}
