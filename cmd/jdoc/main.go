package main

import (
	"fmt"
	"os"

	"github.com/calumari/jdoc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdin, nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
