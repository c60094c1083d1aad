package main

import (
	"os"

	"seatbroker/cmd/seatbroker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
