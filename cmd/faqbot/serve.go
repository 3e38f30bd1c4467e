package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/usecase"
	"github.com/emazinghr/slack-faq-bot/internal/conf"
	"github.com/emazinghr/slack-faq-bot/internal/data"
	"github.com/emazinghr/slack-faq-bot/internal/infra/slack"
	"github.com/emazinghr/slack-faq-bot/internal/server"
	"github.com/emazinghr/slack-faq-bot/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long: `Run the bot. Events arrive over the webhook endpoint, or over
Socket Mode when SLACK_APP_TOKEN is set (no public URL needed).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	slackClient := slack.NewClient(cfg.Slack.BotToken, cfg.Slack.AppToken)

	// Resolve the bot's own user id so its decorating reactions are not
	// counted as feedback.
	botUserID := cfg.Slack.BotUserID
	if botUserID == "" {
		resolved, err := slackClient.AuthTest(context.Background())
		if err != nil {
			return fmt.Errorf("resolve bot user id: %w", err)
		}
		botUserID = resolved
	}
	fmt.Printf("[Bot] Bot user id: %s\n", botUserID)

	// Initialize repository layer
	repos, err := data.NewRepositories(slackClient, cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("create repositories: %w", err)
	}
	defer repos.Close()

	fmt.Printf("[Bot] Store DB: %s\n", cfg.Store.DBPath)

	// Initialize usecase layer
	matcherUC := usecase.NewMatcherUsecase()
	reactionUC := usecase.NewReactionUsecase(botUserID)
	followupUC := usecase.NewFollowupUsecase(repos.Followup, cfg.Followup.FollowupTTL())

	// Initialize service layer
	convSvc := service.NewConversationService(
		repos.Faq,
		repos.Conversation,
		repos.Feedback,
		repos.Message,
		matcherUC,
		reactionUC,
		followupUC,
		cfg.Messages,
	)

	httpSrv := server.NewHTTPServer(convSvc, repos.Faq, cfg.Slack.SigningSecret, cfg.Server.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Slack.AppToken != "" {
		// Socket Mode: the HTTP server still serves status endpoints.
		socketCli := slack.NewSocketModeClient(slackClient)
		socketCli.OnEvent(func(event domain.Event) {
			convSvc.HandleEvent(context.Background(), event)
		})

		go func() {
			if err := httpSrv.Start(); err != nil {
				fmt.Printf("[Bot] HTTP server error: %v\n", err)
			}
		}()

		go func() {
			<-sigCh
			fmt.Println("\nShutting down...")
			socketCli.Stop()
			_ = httpSrv.Stop()
		}()

		fmt.Println("[Bot] Starting in Socket Mode...")
		return socketCli.Start()
	}

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		if err := httpSrv.Stop(); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}
	}()

	fmt.Println("[Bot] Starting webhook server...")
	return httpSrv.Start()
}
