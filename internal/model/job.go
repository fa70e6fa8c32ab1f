package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JobStatus состояние задачи заполнения кэша
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobDone       JobStatus = "done"
	JobFailed     JobStatus = "failed"
)

// Terminal сообщает, является ли состояние конечным
func (s JobStatus) Terminal() bool {
	return s == JobDone || s == JobFailed
}

var ErrMalformedPayload = errors.New("malformed job payload")

// PopulationPayload денормализованный снимок ссылки, сохраняемый вместе с задачей
type PopulationPayload struct {
	Code        Code       `json:"code"`
	Destination URL        `json:"long_url"`
	ExpiresAt   *time.Time `json:"expire_at"`
}

// PopulationJob строка очереди заполнения кэша
type PopulationJob struct {
	ID          int64
	LinkID      int64
	Payload     json.RawMessage
	Status      JobStatus
	AvailableAt time.Time
	LockedAt    *time.Time
	LockedBy    *string
	Attempts    int
	LastError   *string
	LastErrorAt *time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// NewPopulationPayload собирает снимок ссылки для задачи
func NewPopulationPayload(link Link) PopulationPayload {
	expiresAt := link.ExpiresAt
	return PopulationPayload{
		Code:        link.Code,
		Destination: link.Destination,
		ExpiresAt:   &expiresAt,
	}
}

// DecodePayload разбирает payload задачи
// Отсутствие code, long_url или expire_at считается испорченными данными
func (j PopulationJob) DecodePayload() (PopulationPayload, error) {
	var payload PopulationPayload
	if len(j.Payload) == 0 {
		return payload, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}
	if err := json.Unmarshal(j.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	switch {
	case payload.Code == "":
		return payload, fmt.Errorf("%w: missing code", ErrMalformedPayload)
	case payload.Destination == "":
		return payload, fmt.Errorf("%w: missing long_url", ErrMalformedPayload)
	case payload.ExpiresAt == nil:
		return payload, fmt.Errorf("%w: missing expire_at", ErrMalformedPayload)
	}

	return payload, nil
}
