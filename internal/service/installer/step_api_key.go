package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects provider-specific API keys (optional for Ollama)
type APIKeyStep struct {
	input      textinput.Model
	provider   string
	title      string
	isOptional bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.App.Provider
	if s.provider == "" {
		return false
	}

	switch s.provider {
	case "groq":
		s.title = "Groq API Key"
	case "openai":
		s.title = "OpenAI API Key"
	case "anthropic":
		s.title = "Anthropic API Key"
	case "ollama":
		s.title = "Ollama API Key (Optional)"
		s.isOptional = true

		if state.App.OllamaBaseURL == "" {
			state.App.OllamaBaseURL = "http://localhost:11434"
		}
	default:
		return false
	}

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'

	switch s.provider {
	case "groq":
		s.input.Placeholder = "gsk_..."
	case "openai":
		s.input.Placeholder = "sk-..."
	case "anthropic":
		s.input.Placeholder = "sk-ant-..."
	case "ollama":
		s.input.Placeholder = "Optional - press Enter to skip"
		s.input.EchoMode = textinput.EchoNormal
	}
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			switch s.provider {
			case "groq":
				state.App.GroqAPIKey = s.input.Value()
			case "openai":
				state.App.OpenAIAPIKey = s.input.Value()
			case "anthropic":
				state.App.AnthropicAPIKey = s.input.Value()
			case "ollama":
				state.App.OllamaAPIKey = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		if !s.initProvider(state) {
			return "Loading..."
		}
	}

	optionalHint := ""
	if s.isOptional {
		optionalHint = " (optional - press Enter to skip)"
	}

	return fmt.Sprintf("Enter your %s%s:\n\n%s\n\n(press enter to confirm)\n",
		s.title, optionalHint, s.input.View())
}
