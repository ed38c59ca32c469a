package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventboard/backend/internal/model"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	user := &model.User{ID: "u1", Username: "alice", PasswordHash: "x"}
	if err := m.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := m.CreateUser(ctx, &model.User{ID: "u2", Username: "alice"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same username, got %v", err)
	}

	got, err := m.GetUserByUsername(ctx, "alice")
	if err != nil || got.ID != "u1" {
		t.Fatalf("GetUserByUsername = %+v, %v", got, err)
	}

	if err := m.UpdateUser(ctx, &model.User{ID: "missing"}); !IsNoRows(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := m.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := m.GetUserByID(ctx, "u1"); !IsNoRows(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMemoryRotateRefreshToken(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	old := model.RefreshToken{ID: "r1", UserID: "u1", TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := m.InsertRefreshToken(ctx, old); err != nil {
		t.Fatalf("InsertRefreshToken: %v", err)
	}

	next := model.RefreshToken{ID: "r2", UserID: "u1", TokenHash: "h2", ExpiresAt: time.Now().Add(time.Hour)}
	if err := m.RotateRefreshToken(ctx, "r1", next); err != nil {
		t.Fatalf("RotateRefreshToken: %v", err)
	}

	stored, err := m.GetRefreshTokenByHash(ctx, "h1")
	if err != nil {
		t.Fatalf("GetRefreshTokenByHash: %v", err)
	}
	if stored.RevokedAt == nil {
		t.Fatalf("expected old token to be revoked")
	}

	if err := m.RotateRefreshToken(ctx, "r1", model.RefreshToken{ID: "r3", TokenHash: "h3"}); !IsNoRows(err) {
		t.Fatalf("expected second rotation of revoked token to fail, got %v", err)
	}
}

func TestMemoryListEventsFilter(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	events := []model.Event{
		{ID: "e1", Title: "Jazz Night", Location: "Amsterdam", CategoryIDs: []string{"music"}, StartTime: base.Add(time.Hour)},
		{ID: "e2", Title: "Yoga in the park", Location: "Utrecht", CategoryIDs: []string{"sports"}, StartTime: base},
		{ID: "e3", Title: "Rock night", Location: "amsterdam", CategoryIDs: []string{"music", "outdoor"}},
	}
	for i := range events {
		if err := m.CreateEvent(ctx, &events[i]); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter model.EventFilter
		want   []string
	}{
		{name: "all-sorted-by-start", filter: model.EventFilter{}, want: []string{"e2", "e1", "e3"}},
		{name: "title-case-insensitive", filter: model.EventFilter{Title: "NIGHT"}, want: []string{"e1", "e3"}},
		{name: "location", filter: model.EventFilter{Location: "AMSTER"}, want: []string{"e1", "e3"}},
		{name: "category", filter: model.EventFilter{CategoryID: "outdoor"}, want: []string{"e3"}},
		{name: "no-match", filter: model.EventFilter{Title: "opera"}, want: []string{}},
		{name: "percent-is-literal", filter: model.EventFilter{Title: "%"}, want: []string{}},
		{name: "underscore-is-literal", filter: model.EventFilter{Location: "_"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ListEvents(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListEvents: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestMemoryEventIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	event := &model.Event{ID: "e1", Title: "Jazz", CategoryIDs: []string{"music"}}
	if err := m.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	event.CategoryIDs[0] = "mutated"

	got, err := m.GetEventByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if got.CategoryIDs[0] != "music" {
		t.Fatalf("store shares slice with caller: %v", got.CategoryIDs)
	}
}
