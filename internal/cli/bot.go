package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"thurianx/internal/api/telegram"
)

func newBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			if env.cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			bot, err := telegram.NewBot(env.cfg.TelegramToken, env.cfg.MaxUploadBytes, env.container.SessionService, env.container.ClassificationService, env.container.Catalog)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			env.sweeper.Start()
			defer env.sweeper.Stop()

			log.Info().Msg("bot is running")
			return bot.Run(ctx)
		},
	}
}
