package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leonkonan76/MyTelegramBo/bot"
	"github.com/leonkonan76/MyTelegramBo/catalog"
	"github.com/leonkonan76/MyTelegramBo/internal/healthcheck"
	"github.com/leonkonan76/MyTelegramBo/internal/logutil"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (long polling) until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(flagOrViperString(cmd, "bot-token", "telegram.bot_token"))
			if token == "" {
				return fmt.Errorf("missing telegram.bot_token (set via --bot-token or %s_TELEGRAM_BOT_TOKEN)", envPrefix)
			}
			adminID := viper.GetInt64("telegram.admin_id")
			if cmd.Flags().Changed("admin-id") {
				adminID, _ = cmd.Flags().GetInt64("admin-id")
			}
			if adminID == 0 {
				return fmt.Errorf("missing telegram.admin_id (set via --admin-id or %s_TELEGRAM_ADMIN_ID)", envPrefix)
			}

			policy, err := catalog.ParseDuplicatePolicy(viper.GetString("catalog.duplicate_policy"))
			if err != nil {
				return err
			}

			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if listen := healthcheck.NormalizeListen(viper.GetString("healthcheck.listen")); listen != "" {
				srv, err := healthcheck.StartServer(ctx, logger, listen, "bot")
				if err != nil {
					logger.Warn("health_server_start_error", "addr", listen, "error", err.Error())
				} else {
					defer func() {
						shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
						_ = srv.Shutdown(shutdownCtx)
						cancel()
					}()
				}
			}

			storagePath := flagOrViperString(cmd, "storage-path", "storage.path")
			store := catalog.Open(storagePath, policy, logger)
			logger.Info("catalog_opened", "path", storagePath, "duplicate_policy", string(policy))

			b, err := bot.New(bot.Config{
				Token:       token,
				AdminID:     adminID,
				Store:       store,
				Logger:      logger,
				LogsLimit:   viper.GetInt("logs.limit"),
				PollTimeout: viper.GetInt("telegram.poll_timeout"),
				Debug:       viper.GetBool("telegram.debug"),
			})
			if err != nil {
				return err
			}

			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("bot-token", "", "Telegram bot token.")
	cmd.Flags().Int64("admin-id", 0, "Telegram user id of the administrator.")
	cmd.Flags().String("storage-path", "", "Path of the persisted catalog document.")
	return cmd
}
