package installer

import "github.com/andrzm/docchat/internal/config"

// InstallState accumulates the configuration the wizard collects. The
// structs are rendered to .env at the end, so only fields a step actually
// set end up in the file.
type InstallState struct {
	App *config.AppConfig
	RAG *config.RAGConfig
}

func NewInstallState() *InstallState {
	return &InstallState{
		App: &config.AppConfig{},
		RAG: &config.RAGConfig{},
	}
}
