package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/internal/service/chat"
	"github.com/andrzm/docchat/pkg/conv"
	"github.com/andrzm/docchat/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg     *config.AppConfig
	chat    *chat.Service
	rl      *readline.Instance
	session string
}

func NewReadLine(svc *chat.Service, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:     cfg,
		chat:    svc,
		rl:      rl,
		session: defaultSessionID,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit, '/help' for commands.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			r.handleCommand(line)
			continue
		}

		answer, err := r.chat.Answer(ctx, r.session, line)
		if err != nil {
			logger.Error().Err(err).Str("session", r.session).Msg("answer failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(r.rl.Stdout(), "%s\n", conv.MarkdownToText([]byte(answer)))
	}
}

// handleCommand serves the slash commands that operate on the current
// session rather than asking the model anything.
func (r *ReadLine) handleCommand(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		fmt.Fprintln(r.rl.Stdout(), "Commands:")
		fmt.Fprintln(r.rl.Stdout(), "  /session <id>  switch to another session")
		fmt.Fprintln(r.rl.Stdout(), "  /history       print the current session transcript")
		fmt.Fprintln(r.rl.Stdout(), "  exit           quit")
	case "/session":
		if len(fields) < 2 {
			fmt.Fprintf(r.rl.Stdout(), "current session: %s\n", r.session)
			return
		}
		r.session = fields[1]
		fmt.Fprintf(r.rl.Stdout(), "switched to session %q\n", r.session)
	case "/history":
		turns := r.chat.History(r.session)
		if len(turns) == 0 {
			fmt.Fprintln(r.rl.Stdout(), "no history yet")
			return
		}
		for _, turn := range turns {
			label := "Bot"
			if turn.Role == core.RoleUser {
				label = "You"
			}
			fmt.Fprintf(r.rl.Stdout(), "%s: %s\n", label, turn.Content)
		}
	default:
		fmt.Fprintf(r.rl.Stdout(), "unknown command %q, try /help\n", fields[0])
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
