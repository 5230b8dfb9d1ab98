package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/andrzm/docchat/internal/chatlog"
	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/docstore"
	"github.com/andrzm/docchat/internal/history"
	"github.com/andrzm/docchat/internal/index"
	"github.com/andrzm/docchat/internal/providers/embed"
	"github.com/andrzm/docchat/internal/providers/llm"
	"github.com/andrzm/docchat/internal/service/chat"
	"github.com/andrzm/docchat/internal/storage/sqlite"
	"github.com/andrzm/docchat/pkg/log"
	"github.com/andrzm/docchat/pkg/srv"
)

// newChatService builds everything up to the chat service itself. The
// returned services are the cleanups accumulated along the way.
func newChatService(ctx context.Context) (*chat.Service, *config.AppConfig, []srv.Service) {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	archive := sqlite.NewArchiveRepo(db)
	logbook := chatlog.NewLogbook(appCfg.GetLogDir())

	// 3. Generation provider
	generator, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Embedder
	embedder, err := embed.NewEmbedder(ctx, ragCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedder")
	}

	// 5. Document index, built once at startup
	chunks, err := docstore.Load(ctx, ragCfg.DocsDir, docstore.ChunkerConfig{
		ChunkSize:    ragCfg.ChunkSize,
		ChunkOverlap: ragCfg.ChunkOverlap,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("dir", ragCfg.DocsDir).Msg("failed to load documents")
	}
	logger.Info().Int("chunks", len(chunks)).Str("dir", ragCfg.DocsDir).Msg("documents loaded")

	idx, err := index.Build(ctx, embedder, chunks)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build embedding index")
	}

	// 6. Chat service
	userID := uuid.NewString()[:8]
	chatSvc := chat.NewService(
		generator,
		idx,
		history.NewStore(),
		userID,
		ragCfg.TopK,
		appCfg.ContextWindowSize,
		logbook,
		archive,
	)

	return chatSvc, appCfg, services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
