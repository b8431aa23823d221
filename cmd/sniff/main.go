// Package main is a command line front end for the sniff library. It classifies
// files as text or binary and renders staged git changes with binary content
// replaced by a placeholder.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)

	if err := loadDotEnv(); err != nil {
		log.Printf("[WARN] %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// loadDotEnv loads SNIFF_* variables from .env, or from files when given.
// A missing file is not an error.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	return nil
}
