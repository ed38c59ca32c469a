package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventboard/backend/internal/model"
	"github.com/google/uuid"
)

type eventRepo interface {
	ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, event *model.Event) error
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type EventService struct {
	repo eventRepo
}

func NewEventService(repo eventRepo) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	filter.Title = strings.TrimSpace(filter.Title)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.CategoryID = strings.TrimSpace(filter.CategoryID)
	return s.repo.ListEvents(ctx, filter)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Event", id)
	}
	return event, nil
}

// CreateEvent stores a new event. createdBy falls back to actorID, the caller
// resolved by the auth gate.
func (s *EventService) CreateEvent(ctx context.Context, actorID string, req model.CreateEventRequest) (*model.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = actorID
	}
	if createdBy == "" {
		return nil, fmt.Errorf("%w: createdBy is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:          uuid.NewString(),
		CreatedBy:   createdBy,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		CategoryIDs: normalizeIDs(req.CategoryIDs),
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, repoError(err, "Event", event.ID)
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Event", id)
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		event.Title = *req.Title
	}
	if req.CreatedBy != nil && strings.TrimSpace(*req.CreatedBy) != "" {
		event.CreatedBy = strings.TrimSpace(*req.CreatedBy)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Image != nil {
		event.Image = *req.Image
	}
	if req.CategoryIDs != nil {
		event.CategoryIDs = normalizeIDs(req.CategoryIDs)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, repoError(err, "Event", id)
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return repoError(s.repo.DeleteEvent(ctx, id), "Event", id)
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
