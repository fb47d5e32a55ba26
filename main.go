package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"noteplayer/cmd"
	"noteplayer/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("panic: %v\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	if err := cmd.Execute(ctx); err != nil {
		logging.Errorf("%v", err)
		cancel()
		os.Exit(1)
	}
}
