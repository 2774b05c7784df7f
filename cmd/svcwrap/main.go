// Package main is the entry point for svcwrap.
package main

import "github.com/sharkusmanch/svcwrap/internal/cli"

func main() {
	// The service manager launches instances as "svcwrap run-service NAME",
	// so service mode goes through the CLI as well.
	cli.Execute()
}
