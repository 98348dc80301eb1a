// Command tracker records job applications and serves them over HTTP.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/transformer1234/job-application-tracker/internal/cli"
)

func main() {
	// A missing .env is fine; TRACKER_* may come from the real environment.
	_ = godotenv.Load()

	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
