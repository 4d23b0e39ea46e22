package main

import (
	"fmt"
	"os"

	"github.com/Ambros-Technology/bcm-public-smartcontract/cmd/bcm/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		// Report the issue on stderr so scripts can tell it from command output
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
