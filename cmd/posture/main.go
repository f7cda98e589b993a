package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/netwatch/posture/internal/cli"
)

func main() {
	// Optional .env for POSTURE_* variables; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
