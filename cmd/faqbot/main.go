package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faqbot",
	Short: "Slack FAQ bot with satisfaction-feedback tracking",
	Long: `faqbot answers workplace questions in Slack by matching messages
against a curated FAQ set, and tracks whether users were satisfied
with the answers through thumbs-up/down reactions.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(faqCmd)
	rootCmd.AddCommand(conversationsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
