package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/conf"
	"github.com/emazinghr/slack-faq-bot/internal/data"
)

var faqCmd = &cobra.Command{
	Use:   "faq",
	Short: "Manage FAQ entries",
}

var faqAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a FAQ entry",
	Long: `Add a FAQ entry.

Example:
  faqbot faq add --question "How do I request VPN access?" \
    --answer "Open a ticket with IT and your manager will approve it." \
    --category it`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		category, _ := cmd.Flags().GetString("category")

		if question == "" || answer == "" {
			return fmt.Errorf("--question and --answer are required")
		}

		repos, err := openStore()
		if err != nil {
			return err
		}
		defer repos.Close()

		now := time.Now()
		entry := &domain.FaqEntry{
			ID:        uuid.NewString(),
			Question:  question,
			Answer:    answer,
			Category:  category,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Faq.Create(context.Background(), entry); err != nil {
			return err
		}

		fmt.Printf("Added FAQ %s\n", entry.ID)
		return nil
	},
}

var faqListCmd = &cobra.Command{
	Use:   "list",
	Short: "List FAQ entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		repos, err := openStore()
		if err != nil {
			return err
		}
		defer repos.Close()

		ctx := context.Background()
		var entries []domain.FaqEntry
		if all {
			entries, err = repos.Faq.ListAll(ctx)
		} else {
			entries, err = repos.Faq.ListActive(ctx)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No FAQ entries")
			return nil
		}
		for _, entry := range entries {
			state := "active"
			if !entry.IsActive {
				state = "inactive"
			}
			fmt.Printf("%s  [%s]  %s\n", entry.ID, state, entry.Question)
		}
		return nil
	},
}

var faqEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Mark a FAQ entry active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFaqActive(args[0], true)
	},
}

var faqDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Mark a FAQ entry inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFaqActive(args[0], false)
	},
}

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "Show recent conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		repos, err := openStore()
		if err != nil {
			return err
		}
		defer repos.Close()

		records, err := repos.Conversation.Recent(context.Background(), limit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No conversations")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %-9s  %dms  %s: %q -> %q\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.ResponseType,
				rec.ResponseTimeMs,
				rec.UserID,
				rec.UserMessage,
				rec.BotResponse,
			)
		}
		return nil
	},
}

func setFaqActive(id string, active bool) error {
	repos, err := openStore()
	if err != nil {
		return err
	}
	defer repos.Close()

	if err := repos.Faq.SetActive(context.Background(), id, active); err != nil {
		return err
	}

	state := "enabled"
	if !active {
		state = "disabled"
	}
	fmt.Printf("FAQ %s %s\n", id, state)
	return nil
}

// openStore opens the repositories without a Slack client; the admin
// commands only touch the local store.
func openStore() (*data.Repositories, error) {
	cfg := conf.LoadFromEnv()
	return data.NewRepositories(nil, cfg.Store.DBPath)
}

func init() {
	faqAddCmd.Flags().String("question", "", "the question text")
	faqAddCmd.Flags().String("answer", "", "the answer text")
	faqAddCmd.Flags().String("category", "", "optional category")

	faqListCmd.Flags().Bool("all", false, "include inactive entries")

	conversationsCmd.Flags().Int("limit", 20, "number of records to show")

	faqCmd.AddCommand(faqAddCmd)
	faqCmd.AddCommand(faqListCmd)
	faqCmd.AddCommand(faqEnableCmd)
	faqCmd.AddCommand(faqDisableCmd)
}
