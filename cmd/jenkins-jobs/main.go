package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/glasswalk3r/jenkins-jobs/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.GetLogger()
	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		log.Error(err.Error())
	}
	log.CloseLogFile()
	if err != nil {
		cancel()
		os.Exit(1)
	}
}
