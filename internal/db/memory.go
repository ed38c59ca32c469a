package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eventboard/backend/internal/model"
)

// Memory is a process-local store used for tests and STORAGE_BACKEND=memory.
type Memory struct {
	mu            sync.RWMutex
	users         map[string]model.User
	refreshTokens map[string]model.RefreshToken
	categories    map[string]model.Category
	events        map[string]model.Event
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[string]model.User),
		refreshTokens: make(map[string]model.RefreshToken),
		categories:    make(map[string]model.Category),
		events:        make(map[string]model.Event),
	}
}

func (m *Memory) EnsureSchema(ctx context.Context) error { return nil }

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() {}

func (m *Memory) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(ctx context.Context, username string) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := []model.User{}
	for _, user := range m.users {
		if username != "" && user.Username != username {
			continue
		}
		list = append(list, user)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (m *Memory) UpdateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && existing.Username == user.Username {
			return ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	for hash, token := range m.refreshTokens {
		if token.UserID == id {
			delete(m.refreshTokens, hash)
		}
	}
	return nil
}

func (m *Memory) InsertRefreshToken(ctx context.Context, token model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.refreshTokens[token.TokenHash]; ok {
		return ErrDuplicate
	}
	m.refreshTokens[token.TokenHash] = token
	return nil
}

func (m *Memory) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, ok := m.refreshTokens[tokenHash]
	if !ok {
		return nil, ErrNotFound
	}
	return &token, nil
}

func (m *Memory) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, ok := m.refreshTokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
		m.refreshTokens[tokenHash] = token
	}
	return nil
}

func (m *Memory) RotateRefreshToken(ctx context.Context, oldTokenID string, next model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for hash, token := range m.refreshTokens {
		if token.ID != oldTokenID || token.RevokedAt != nil {
			continue
		}
		if _, ok := m.refreshTokens[next.TokenHash]; ok {
			return ErrDuplicate
		}
		now := time.Now()
		token.RevokedAt = &now
		m.refreshTokens[hash] = token
		m.refreshTokens[next.TokenHash] = next
		return nil
	}
	return ErrNotFound
}

func (m *Memory) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *Memory) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) CreateCategory(ctx context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; ok {
		return ErrDuplicate
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *Memory) UpdateCategory(ctx context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return ErrNotFound
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *Memory) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *Memory) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := strings.ToLower(filter.Title)
	location := strings.ToLower(filter.Location)

	list := []model.Event{}
	for _, event := range m.events {
		if title != "" && !strings.Contains(strings.ToLower(event.Title), title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(event.Location), location) {
			continue
		}
		if filter.CategoryID != "" && !containsString(event.CategoryIDs, filter.CategoryID) {
			continue
		}
		list = append(list, cloneEvent(event))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch {
		case a.StartTime.IsZero() != b.StartTime.IsZero():
			return !a.StartTime.IsZero()
		case !a.StartTime.Equal(b.StartTime):
			return a.StartTime.Before(b.StartTime)
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ID < b.ID
		}
	})
	return list, nil
}

func (m *Memory) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	event = cloneEvent(event)
	return &event, nil
}

func (m *Memory) CreateEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[event.ID]; ok {
		return ErrDuplicate
	}
	m.events[event.ID] = cloneEvent(*event)
	return nil
}

func (m *Memory) UpdateEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[event.ID]; !ok {
		return ErrNotFound
	}
	m.events[event.ID] = cloneEvent(*event)
	return nil
}

func (m *Memory) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func cloneEvent(event model.Event) model.Event {
	event.CategoryIDs = append([]string{}, event.CategoryIDs...)
	return event
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
