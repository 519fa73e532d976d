// Package main is the entry point for the filebak CLI.
package main

import (
	"os"

	"filebak/cmd/filebak/commands"
)

func main() {
	os.Exit(commands.Execute())
}
