// Package main is the entry point for the Hopelink admin console.
// It exposes the admin dashboard's resource views and session lifecycle
// as terminal commands.
package main

import (
	"hopelink/cli/cmd"
)

func main() {
	cmd.Execute()
}
