package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/andrzm/docchat/internal/transport/cli"
	"github.com/andrzm/docchat/pkg/log"
	"github.com/andrzm/docchat/pkg/srv"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat over your documents",
	Long:  `Loads the configured document directory, builds the embedding index and starts an interactive prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting docchat")

		chatSvc, appCfg, cleanups := newChatService(ctx)

		rl, err := cli.NewReadLine(chatSvc, appCfg)
		if err != nil {
			return err
		}

		srv.StartServices(ctx, cleanups)

		// The prompt runs in the foreground; leaving it ends the process.
		if err := rl.Start(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("readline loop failed")
		}
		cancel()

		srv.ShutdownServices(ctx, append(cleanups, rl))
		logger.Info().Msg("docchat has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
