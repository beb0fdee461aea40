package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/rulesync/cmd/rulesync"
	"github.com/arthur-debert/rulesync/pkg/style"
)

func main() {
	rootCmd := rulesync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
