// montecarlo runs weighted dice simulations from a YAML dice set.
//
// Usage:
//
//	montecarlo play --dice dice.yaml --rolls 1000 [--seed 42] [--form wide|narrow] [--save]
//	montecarlo serve --dice dice.yaml [--port 8081]
//	montecarlo version
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env so MC_* and DATABASE_URL are set: cwd .env or project root .env/.env.local
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../.env.local")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
