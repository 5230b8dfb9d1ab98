package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrzm/docchat/internal/chatlog"
	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/internal/storage/sqlite"
	"github.com/andrzm/docchat/pkg/log"
)

var (
	logsFromDB bool
	logsLimit  int
)

var logsCmd = &cobra.Command{
	Use:   "logs [session]",
	Short: "Print the recorded interactions of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			log.FromCtx(ctx).Fatal().Err(err).Msg("failed to init env")
		}
		appCfg := config.NewAppConfig(ctx)
		sessionID := args[0]

		var (
			interactions []core.Interaction
			err          error
		)
		if logsFromDB {
			db, dbErr := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
			if dbErr != nil {
				return dbErr
			}
			defer db.Close()
			interactions, err = sqlite.NewArchiveRepo(db).ListBySession(ctx, sessionID, logsLimit)
		} else {
			interactions, err = chatlog.NewLogbook(appCfg.GetLogDir()).ReadAll(sessionID)
		}
		if err != nil {
			return err
		}

		if len(interactions) == 0 {
			fmt.Println("no interactions recorded for this session")
			return nil
		}
		for _, it := range interactions {
			fmt.Printf("[%s] %s\n", it.Timestamp.Format("2006-01-02 15:04:05"), it.UserInput)
			fmt.Printf("  %s\n", it.Answer)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().BoolVar(&logsFromDB, "db", false, "read from the sqlite archive instead of the CSV chat log")
	logsCmd.Flags().IntVar(&logsLimit, "limit", 50, "maximum interactions to read from the archive")
	rootCmd.AddCommand(logsCmd)
}
