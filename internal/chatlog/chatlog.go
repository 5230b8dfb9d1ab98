package chatlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/andrzm/docchat/internal/core"
)

const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"Timestamp", "User ID", "Session ID", "User Input", "Answer", "History"}

// Logbook appends one CSV record per completed turn, one file per session.
// The header row is written once when the file is created; records are
// never rewritten or deleted.
type Logbook struct {
	dir string
	mu  sync.Mutex
}

func NewLogbook(dir string) *Logbook {
	return &Logbook{dir: dir}
}

func (l *Logbook) path(sessionID string) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_chat_log.csv", sessionID))
}

func (l *Logbook) Record(_ context.Context, it core.Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path(it.SessionID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat session log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := []string{
		it.Timestamp.Format(timestampLayout),
		it.UserID,
		it.SessionID,
		it.UserInput,
		it.Answer,
		it.History,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	w.Flush()
	return w.Error()
}

// ReadAll returns every record logged for the session, in append order.
func (l *Logbook) ReadAll(sessionID string) ([]core.Interaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path(sessionID))
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse session log: %w", err)
	}

	var records []core.Interaction
	for i, row := range rows {
		if i == 0 || len(row) != len(header) {
			continue
		}
		ts, err := time.Parse(timestampLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp in row %d: %w", i, err)
		}
		records = append(records, core.Interaction{
			Timestamp: ts,
			UserID:    row[1],
			SessionID: row[2],
			UserInput: row[3],
			Answer:    row[4],
			History:   row[5],
		})
	}
	return records, nil
}

// SerializeHistory flattens a transcript snapshot into the single-cell form
// used by the History column.
func SerializeHistory(turns []core.Message) string {
	parts := make([]string, 0, len(turns))
	for _, turn := range turns {
		role := "Bot"
		if turn.Role == core.RoleUser {
			role = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", role, turn.Content))
	}
	return strings.Join(parts, " | ")
}
