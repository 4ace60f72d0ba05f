package main

import (
	"os"

	"modelhub/internal/cli"
)

func main() { os.Exit(cli.Main()) }
