package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// defaultModels maps a provider to the model used when the input is left
// empty.
var defaultModels = map[string]string{
	"groq":      "gemma2-9b-it",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"ollama":    "llama3",
}

// ModelStep collects the model name for the chosen provider
type ModelStep struct {
	input textinput.Model
	ready bool
}

func NewModelStep() Step {
	return &ModelStep{}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) initInput(state *InstallState) {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 128
	s.input.Width = 40
	s.input.Placeholder = defaultModels[state.App.Provider]
	s.ready = true
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		s.initInput(state)
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			value := strings.TrimSpace(s.input.Value())
			if value == "" {
				value = defaultModels[state.App.Provider]
			}
			state.App.Model = value
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if !s.ready {
		s.initInput(state)
	}
	return fmt.Sprintf("Model to use (press Enter for %s):\n\n%s\n\n(press enter to confirm)\n",
		defaultModels[state.App.Provider], s.input.View())
}
