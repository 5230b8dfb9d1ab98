package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrzm/docchat/pkg/conv"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Long:  `Builds the index, answers one question and exits. Repeated calls with the same --session id do not share history, use 'docchat chat' for multi-turn conversations.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		chatSvc, _, cleanups := newChatService(ctx)
		defer func() {
			for _, c := range cleanups {
				_ = c.Shutdown(ctx)
			}
		}()

		question := strings.Join(args, " ")
		answer, err := chatSvc.Answer(ctx, askSession, question)
		if err != nil {
			return err
		}

		fmt.Println(conv.MarkdownToText([]byte(answer)))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askSession, "session", "cli-once", "session id to record the exchange under")
	rootCmd.AddCommand(askCmd)
}
