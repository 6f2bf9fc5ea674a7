package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
)

const dateLayout = "2006-01-02"

// Record - документ архива для одного события.
type Record struct {
	EventType events.Type     `json:"event_type"`
	Entity    events.Entity   `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Status    string          `json:"status,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// FileSink складывает события в файловое дерево
// {root}/{entity}/{status или тип}/{yyyy-mm-dd}/{id}.json.
// Последующие события той же сущности в том же статусе перезаписывают файл.
type FileSink struct {
	root string
}

func NewFileSink(root string) *FileSink {
	return &FileSink{root: root}
}

func (s *FileSink) Archive(ctx context.Context, ev events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data, err := json.MarshalIndent(Record{
		EventType: ev.Type(),
		Entity:    ev.Entity(),
		EntityID:  ev.EntityID(),
		Status:    ev.Status(),
		Payload:   payload,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	path := s.Path(ev)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}

	// Сначала временный файл, затем rename, чтобы читатель не увидел половину документа.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move archive: %w", err)
	}
	return nil
}

// Path возвращает путь документа для события.
func (s *FileSink) Path(ev events.Event) string {
	bucket := ev.Status()
	if bucket == "" {
		bucket = string(ev.Type())
	}
	return filepath.Join(
		s.root,
		string(ev.Entity()),
		sanitize(strings.ToLower(bucket)),
		ev.Time().UTC().Format(dateLayout),
		sanitize(ev.EntityID())+".json",
	)
}

func sanitize(part string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(part)
}
