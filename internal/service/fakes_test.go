package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"docuchat/internal/domain"
	"docuchat/internal/llm"
)

// fakeSessionStore is an in-memory SessionStore
type fakeSessionStore struct {
	sessions map[uuid.UUID]*domain.Session
	turns    []*domain.Turn
	touched  []uuid.UUID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (f *fakeSessionStore) Create(ctx context.Context, session *domain.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetOwned(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) GetOwnedAny(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.DeletedAt == nil {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (f *fakeSessionStore) UpdateTitle(ctx context.Context, userID, sessionID uuid.UUID, title string) error {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.DeletedAt != nil {
		return domain.ErrNotFound
	}
	s.Title = title
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSessionStore) Touch(ctx context.Context, sessionID uuid.UUID) error {
	if s, ok := f.sessions[sessionID]; ok {
		s.UpdatedAt = time.Now()
	}
	f.touched = append(f.touched, sessionID)
	return nil
}

func (f *fakeSessionStore) SoftDelete(ctx context.Context, userID, sessionID uuid.UUID) error {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return domain.ErrNotFound
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

func (f *fakeSessionStore) CreateTurn(ctx context.Context, turn *domain.Turn) error {
	turn.ID = uuid.New()
	turn.CreatedAt = time.Now()
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeSessionStore) ListTurns(ctx context.Context, sessionID uuid.UUID) ([]*domain.Turn, error) {
	var out []*domain.Turn
	for _, t := range f.turns {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeSettingsStore is an in-memory SettingsStore
type fakeSettingsStore struct {
	byUser map[uuid.UUID]*domain.Settings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{byUser: make(map[uuid.UUID]*domain.Settings)}
}

func (f *fakeSettingsStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSettingsStore) Create(ctx context.Context, settings *domain.Settings) error {
	settings.ID = uuid.New()
	copied := *settings
	f.byUser[settings.UserID] = &copied
	return nil
}

func (f *fakeSettingsStore) Update(ctx context.Context, settings *domain.Settings) error {
	if _, ok := f.byUser[settings.UserID]; !ok {
		return domain.ErrNotFound
	}
	copied := *settings
	f.byUser[settings.UserID] = &copied
	return nil
}

// fakeUsageStore is an in-memory UsageStore
type fakeUsageStore struct {
	entries []*domain.UsageEntry
	err     error
}

func (f *fakeUsageStore) Create(ctx context.Context, entry *domain.UsageEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeUsageStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageEntry, error) {
	var out []*domain.UsageEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeCompleter stands in for the provider registry
type fakeCompleter struct {
	gotMessages []llm.Message
	gotConfig   llm.Config
	result      *llm.CompletionResult
	err         error
}

func (f *fakeCompleter) Generate(ctx context.Context, messages []llm.Message, cfg llm.Config) (*llm.CompletionResult, error) {
	f.gotMessages = messages
	f.gotConfig = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
