package main

import (
	"os"

	"github.com/gnolang/eslex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
