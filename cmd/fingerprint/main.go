// Package main records a device fingerprint and lists the stored ones.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	fingerprintcmd "github.com/abroxchat/abrox/internal/cmd/fingerprint"
)

func main() {
	cfg, err := fingerprintcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[FINGERPRINT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fingerprintcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("record fingerprint: %v", err)
	}
}
