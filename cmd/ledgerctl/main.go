package main

import (
	"context"
	"log"
	"os"

	"erp-ledger/internal/cli"
	"erp-ledger/internal/logger"
)

func main() {
	cfg := logger.DefaultConfig()
	cfg.Output = "stderr"
	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := cli.Execute(context.Background(), cli.NewRootCmd(nil)); err != nil {
		os.Exit(1)
	}
}
