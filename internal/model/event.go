package model

import "time"

type Event struct {
	ID          string    `json:"id"`
	CreatedBy   string    `json:"createdBy"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryIDs []string  `json:"categoryIds"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateEventRequest struct {
	CreatedBy   string    `json:"createdBy"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryIDs []string  `json:"categoryIds"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// UpdateEventRequest carries a partial update; nil fields are left as stored.
type UpdateEventRequest struct {
	CreatedBy   *string    `json:"createdBy"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	CategoryIDs []string   `json:"categoryIds"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

// EventFilter narrows ListEvents. Empty fields do not filter.
type EventFilter struct {
	Title      string
	Location   string
	CategoryID string
}
