package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tetu-io/tetu-timelock/cmd/timelock"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := timelock.BuildTimelockCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
