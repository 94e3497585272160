// Package main provides the entry point for the ScholarIQ backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scholariq",
	Short: "ScholarIQ scholarship matching backend",
	Long:  "ScholarIQ matches students to scholarships with a rule-based scoring engine, content similarity ranking and an optional trained match model, exposed over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
