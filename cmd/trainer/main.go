// Package main starts the GM trainer: a practice table where the Game
// Master's narration is answered by LLM-simulated players.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	trainercmd "github.com/louisbranch/gmtrainer/internal/cmd/trainer"
	"github.com/louisbranch/gmtrainer/internal/platform/config"
)

func main() {
	cfg, err := trainercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[TRAINER] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trainercmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to run trainer: %v", err)
	}
}
