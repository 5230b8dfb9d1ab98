package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultDocsDir = "docs"

// DocsDirStep collects the directory of .txt documents to index
type DocsDirStep struct {
	input textinput.Model
	ready bool
}

func NewDocsDirStep() Step {
	return &DocsDirStep{}
}

func (s *DocsDirStep) Init() tea.Cmd {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.Placeholder = defaultDocsDir
	s.ready = true
	return textinput.Blink
}

func (s *DocsDirStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			value := strings.TrimSpace(s.input.Value())
			if value == "" {
				value = defaultDocsDir
			}
			state.RAG.DocsDir = value
			return nil, nil
		}
	}
	return s, cmd
}

func (s *DocsDirStep) View(state *InstallState) string {
	return fmt.Sprintf("Directory with your .txt documents (press Enter for %q):\n\n%s\n\n(press enter to confirm)\n",
		defaultDocsDir, s.input.View())
}
