package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// EmbedStep selects the embedding provider used to index documents.
// Ollama keeps everything local; OpenAI reuses the key collected earlier.
type EmbedStep struct {
	choices []string
	cursor  int
}

func NewEmbedStep() Step {
	return &EmbedStep{
		choices: []string{"Ollama", "OpenAI"},
		cursor:  0,
	}
}

func (s *EmbedStep) Init() tea.Cmd {
	return nil
}

func (s *EmbedStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			switch strings.ToLower(s.choices[s.cursor]) {
			case "ollama":
				state.RAG.EmbedProvider = "ollama"
				state.RAG.EmbedModel = "all-minilm"
				state.RAG.EmbedBaseURL = state.App.OllamaBaseURL
			case "openai":
				state.RAG.EmbedProvider = "openai"
				state.RAG.EmbedModel = "text-embedding-3-small"
				state.RAG.EmbedAPIKey = state.App.OpenAIAPIKey
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *EmbedStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your embedding provider:\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
