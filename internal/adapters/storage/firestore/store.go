package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/observability"
)

// currentDocID is the fixed document holding the single "current"
// conversation snapshot. There is exactly one at a time.
const currentDocID = "current"

type Store struct {
	client *firestore.Client
	now    func() time.Time
}

// NewStore creates a Firestore-backed HistoryStore.
// Uses the project passed (MODELFIX_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, now: time.Now}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) snapshotDoc() *firestore.DocumentRef {
	return s.client.Collection("sessions").Doc(currentDocID)
}

func (s *Store) auditCol() *firestore.CollectionRef {
	return s.client.Collection("audit")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type messageDoc struct {
	Role    string `firestore:"role"`
	Content string `firestore:"content"`
}

type snapshotDoc struct {
	Messages  []messageDoc `firestore:"messages"`
	UpdatedAt time.Time    `firestore:"updated_at"`
}

type auditDoc struct {
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	Timestamp time.Time `firestore:"ts"`
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) Load(ctx context.Context) domain.History {
	log := observability.LoggerFromContext(ctx).With("backend", "firestore")

	snap, err := s.snapshotDoc().Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			log.Warn("could not read history snapshot, starting empty", "error", err)
		}
		return domain.History{}
	}

	var doc snapshotDoc
	if err := snap.DataTo(&doc); err != nil {
		log.Warn("history snapshot is corrupt, starting empty", "error", err)
		return domain.History{}
	}

	history := make(domain.History, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		history = append(history, domain.Message{Role: domain.Role(m.Role), Content: m.Content})
	}
	return history
}

func (s *Store) Save(ctx context.Context, history domain.History) error {
	doc := snapshotDoc{
		Messages:  make([]messageDoc, 0, len(history)),
		UpdatedAt: s.now().UTC(),
	}
	for _, m := range history {
		doc.Messages = append(doc.Messages, messageDoc{Role: string(m.Role), Content: m.Content})
	}

	if _, err := s.snapshotDoc().Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore Save: %w", err)
	}
	return nil
}

func (s *Store) AppendLog(ctx context.Context, msg domain.Message) error {
	doc := auditDoc{
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: s.now().UTC(),
	}

	if _, err := s.auditCol().Doc(uuid.NewString()).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendLog: %w", err)
	}
	return nil
}

func (s *Store) Reset(ctx context.Context, initial domain.History) error {
	if initial == nil {
		initial = domain.History{}
	}
	for _, msg := range initial {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedSeed, err)
		}
	}
	return s.Save(ctx, initial)
}
