package core

const (
	AppName       = "DocChat"
	AppUserAgent  = "DocChat/0.1"
	AppRepository = "https://github.com/andrzm/docchat"
	AppVersion    = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn in the shape the chat completion
// APIs expect.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is a bounded slice of one source document, the unit of retrieval.
// Index is the position of the chunk within the whole corpus load and acts
// as a stable tie-breaker when similarity scores are equal.
type Chunk struct {
	Source    string
	Text      string
	Index     int
	TokenSize int
}

// ScoredChunk pairs a chunk with its cosine similarity to a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}
