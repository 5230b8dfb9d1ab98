package chat

import (
	"strings"

	"github.com/andrzm/docchat/internal/core"
)

const reformulateInstruction = "Given a chat history and the latest user question " +
	"which might reference context in the chat history, " +
	"formulate a standalone question which can be understood " +
	"without the chat history. Do NOT answer the question, " +
	"just reformulate it if needed and otherwise return it as is."

const answerInstruction = "You are an assistant for question-answering tasks. " +
	"Use the following pieces of retrieved context to answer " +
	"the question. If you don't know the answer, say that you " +
	"don't know. Use three sentences maximum and keep the " +
	"answer concise.\n\n"

func buildReformulatePrompt(history []core.Message, utterance string) []core.Message {
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: reformulateInstruction})
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: utterance})
	return messages
}

func buildAnswerPrompt(hits []core.ScoredChunk, history []core.Message, utterance string) []core.Message {
	var context strings.Builder
	for i, hit := range hits {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(hit.Chunk.Text)
	}

	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{
		Role:    core.RoleSystem,
		Content: answerInstruction + context.String(),
	})
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: utterance})
	return messages
}

// window returns the trailing n turns handed to the model. Stored history
// is never truncated, only the prompt view is.
func window(history []core.Message, n int) []core.Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
