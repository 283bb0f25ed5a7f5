// Package main is the entry point for the optset CLI.
package main

import "gooze.dev/pkg/optset/cmd"

func main() {
	cmd.Execute()
}
