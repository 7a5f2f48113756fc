package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/LuSP19/space-tg/config"
	"github.com/LuSP19/space-tg/logging"
	"github.com/LuSP19/space-tg/repositories"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("space-tg failed")
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg   *config.Config
		dir   string
		delay int
	)

	root := &cobra.Command{
		Use:           "space-tg",
		Short:         "Download space images and post them to a Telegram chat",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("dir") {
				loaded.ImagesDir = dir
			}
			if cmd.Flags().Changed("delay") {
				if delay < 0 {
					return fmt.Errorf("--delay must not be negative")
				}
				loaded.SendDelaySeconds = delay
			}
			logging.Setup(loaded.LogLevel)
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateFetch(); err != nil {
				return err
			}
			if err := cfg.ValidateDeliver(); err != nil {
				return err
			}
			sender, err := repositories.NewTelegramClient(cfg.TGBotToken)
			if err != nil {
				return err
			}
			runService, err := newRunService(cmd.Context(), cfg, sender)
			if err != nil {
				return err
			}
			_, err = runService.Run(cmd.Context())
			return err
		},
	}
	root.PersistentFlags().StringVar(&dir, "dir", "images", "directory for downloaded images (overrides IMAGES_DIR)")
	root.PersistentFlags().IntVar(&delay, "delay", 86400, "seconds between sends (overrides SPACE_IMAGES_SEND_DELAY)")

	root.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Download images from SpaceX, APOD and EPIC without sending them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateFetch(); err != nil {
				return err
			}
			runService, err := newRunService(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			_, err = runService.Fetch(cmd.Context())
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "deliver",
		Short: "Send every image already in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateDeliver(); err != nil {
				return err
			}
			sender, err := repositories.NewTelegramClient(cfg.TGBotToken)
			if err != nil {
				return err
			}
			runService, err := newRunService(cmd.Context(), cfg, sender)
			if err != nil {
				return err
			}
			_, err = runService.Deliver(cmd.Context())
			return err
		},
	})

	return root
}
