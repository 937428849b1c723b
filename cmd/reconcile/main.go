package main

import (
	"os"

	"github.com/clearledger/reconciler/cmd/reconcile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
