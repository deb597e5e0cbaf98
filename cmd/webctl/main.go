package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
