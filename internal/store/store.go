package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

// Store хранилище в памяти для запуска без PostgreSQL и для тестов
// Все изменения выполняются под одним мьютексом, поэтому выборка задач атомарна
type Store struct {
	mutex sync.Mutex

	links      map[int64]*model.Link
	byCode     map[model.Code]int64
	jobs       map[int64]*model.PopulationJob
	usage      []model.UsageEvent
	nextLinkID int64
	nextJobID  int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		links:  make(map[int64]*model.Link),
		byCode: make(map[model.Code]int64),
		jobs:   make(map[int64]*model.PopulationJob),
		now:    time.Now,
	}
}

// SetClock подменяет источник времени
func (s *Store) SetClock(now func() time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.now = now
}

// Ping всегда успешен, хранилище живет в памяти процесса
func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) FindActiveByCode(_ context.Context, code model.Code) (model.Link, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id, ok := s.byCode[code]
	if !ok {
		return model.Link{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	link := s.links[id]
	if !link.Servable(s.now()) {
		return model.Link{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	return *link, nil
}

// CreateLink сохраняет ссылку, присваивает код и ставит задачу заполнения кэша за один шаг
func (s *Store) CreateLink(_ context.Context, destination model.URL, expiresAt time.Time, creatorIP string, codeFor func(id int64) model.Code) (model.Link, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextLinkID++
	id := s.nextLinkID
	code := codeFor(id)

	if _, exists := s.byCode[code]; exists {
		s.nextLinkID--
		return model.Link{}, fmt.Errorf("code %s already assigned", code)
	}

	link := &model.Link{
		ID:          id,
		Code:        code,
		Destination: destination,
		CreatorIP:   creatorIP,
		CreatedAt:   s.now(),
		ExpiresAt:   expiresAt,
		IsActive:    true,
	}

	payload, err := json.Marshal(model.NewPopulationPayload(*link))
	if err != nil {
		s.nextLinkID--
		return model.Link{}, fmt.Errorf("failed to encode job payload: %w", err)
	}

	s.links[id] = link
	s.byCode[code] = id
	s.enqueueLocked(id, payload, time.Time{})

	return *link, nil
}

// Enqueue ставит задачу заполнения кэша, нулевой availableAt означает "сейчас"
func (s *Store) Enqueue(_ context.Context, linkID int64, payload json.RawMessage, availableAt time.Time) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.enqueueLocked(linkID, payload, availableAt), nil
}

func (s *Store) enqueueLocked(linkID int64, payload json.RawMessage, availableAt time.Time) int64 {
	now := s.now()
	if availableAt.IsZero() {
		availableAt = now
	}

	s.nextJobID++
	s.jobs[s.nextJobID] = &model.PopulationJob{
		ID:          s.nextJobID,
		LinkID:      linkID,
		Payload:     slices.Clone(payload),
		Status:      model.JobPending,
		AvailableAt: availableAt,
		CreatedAt:   now,
	}

	return s.nextJobID
}

func (s *Store) DeactivateLink(_ context.Context, id int64) (model.Link, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, ok := s.links[id]
	switch {
	case !ok:
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
	case !link.IsActive:
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrAlreadyInactive)
	case !link.ExpiresAt.After(s.now()):
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrExpired)
	}

	link.IsActive = false

	// Ожидающие задачи больше не должны заполнять кэш
	now := s.now()
	for _, job := range s.jobs {
		if job.LinkID == id && job.Status == model.JobPending {
			processedAt := now
			job.Status = model.JobDone
			job.ProcessedAt = &processedAt
		}
	}

	return *link, nil
}

func (s *Store) DeleteLink(_ context.Context, id int64) (model.Link, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, ok := s.links[id]
	if !ok {
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
	}

	delete(s.links, id)
	delete(s.byCode, link.Code)
	for jobID, job := range s.jobs {
		if job.LinkID == id {
			delete(s.jobs, jobID)
		}
	}

	return *link, nil
}

func (s *Store) ListLinks(_ context.Context, filter model.LinkFilter) (model.LinkPage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	matched := make([]model.Link, 0, len(s.links))
	for _, link := range s.links {
		if !filter.IncludeExpired && !link.ExpiresAt.After(now) {
			continue
		}
		if !filter.IncludeInactive && !link.IsActive {
			continue
		}
		matched = append(matched, *link)
	}

	slices.SortFunc(matched, func(a, b model.Link) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})

	page := model.LinkPage{Total: len(matched)}
	offset := filter.Offset()
	if offset >= len(matched) {
		page.Links = []model.Link{}
		return page, nil
	}
	end := min(offset+filter.PageSize, len(matched))
	page.Links = matched[offset:end]

	return page, nil
}

func (s *Store) DeactivateExpired(_ context.Context) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	var n int64
	for _, link := range s.links {
		if link.IsActive && link.ExpiresAt.Before(now) {
			link.IsActive = false
			n++
		}
	}

	return n, nil
}

func (s *Store) ListInactiveCodes(_ context.Context) ([]model.Code, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	codes := make([]model.Code, 0)
	for _, link := range s.links {
		if !link.IsActive && link.Code != "" {
			codes = append(codes, link.Code)
		}
	}
	slices.Sort(codes)

	return codes, nil
}

func (s *Store) ReclaimStaleJobs(_ context.Context, visibilityTimeout time.Duration) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	deadline := now.Add(-visibilityTimeout)
	var n int64
	for _, job := range s.jobs {
		if job.Status == model.JobProcessing && job.LockedAt != nil && job.LockedAt.Before(deadline) {
			job.Status = model.JobPending
			job.AvailableAt = now
			job.LockedAt = nil
			job.LockedBy = nil
			n++
		}
	}

	return n, nil
}

func (s *Store) ClaimJobs(_ context.Context, workerID string, limit int) ([]model.PopulationJob, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	ready := make([]*model.PopulationJob, 0)
	for _, job := range s.jobs {
		if job.Status == model.JobPending && !job.AvailableAt.After(now) {
			ready = append(ready, job)
		}
	}

	slices.SortFunc(ready, func(a, b *model.PopulationJob) int {
		if c := a.AvailableAt.Compare(b.AvailableAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	if len(ready) > limit {
		ready = ready[:limit]
	}

	claimed := make([]model.PopulationJob, 0, len(ready))
	for _, job := range ready {
		lockedAt := now
		lockedBy := workerID
		job.Status = model.JobProcessing
		job.LockedAt = &lockedAt
		job.LockedBy = &lockedBy
		job.Attempts++
		claimed = append(claimed, *job)
	}

	return claimed, nil
}

func (s *Store) CompleteJob(_ context.Context, id int64) error {
	return s.finishJob(id, func(job *model.PopulationJob, now time.Time) {
		job.Status = model.JobDone
		job.ProcessedAt = &now
	})
}

func (s *Store) FailJob(_ context.Context, id int64, reason string) error {
	return s.finishJob(id, func(job *model.PopulationJob, now time.Time) {
		job.Status = model.JobFailed
		job.ProcessedAt = &now
		job.LastError = &reason
		job.LastErrorAt = &now
	})
}

func (s *Store) RetryJob(_ context.Context, id int64, delay time.Duration, reason string) error {
	return s.finishJob(id, func(job *model.PopulationJob, now time.Time) {
		job.Status = model.JobPending
		job.AvailableAt = now.Add(delay)
		job.LastError = &reason
		job.LastErrorAt = &now
	})
}

// finishJob применяет переход только к задаче в processing и снимает с нее блокировку
func (s *Store) finishJob(id int64, apply func(job *model.PopulationJob, now time.Time)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status != model.JobProcessing {
		return fmt.Errorf("job %d: %w", id, ErrNotClaimed)
	}

	apply(job, s.now())
	job.LockedAt = nil
	job.LockedBy = nil

	return nil
}

// Job возвращает копию задачи по id
func (s *Store) Job(id int64) (model.PopulationJob, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return model.PopulationJob{}, false
	}
	return *job, true
}

// JobsForLink возвращает задачи ссылки в порядке создания
func (s *Store) JobsForLink(linkID int64) []model.PopulationJob {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	jobs := make([]model.PopulationJob, 0)
	for _, job := range s.jobs {
		if job.LinkID == linkID {
			jobs = append(jobs, *job)
		}
	}
	slices.SortFunc(jobs, func(a, b model.PopulationJob) int { return int(a.ID - b.ID) })

	return jobs
}

func (s *Store) WriteUsage(_ context.Context, event model.UsageEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.usage = append(s.usage, event)
	return nil
}

// UsageEvents возвращает копию журнала использования
func (s *Store) UsageEvents() []model.UsageEvent {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return slices.Clone(s.usage)
}
