package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a site build job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusLoading   JobStatus = "loading"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the state of a single site build.
type Job struct {
	mu sync.Mutex

	ID            string    `json:"job_id"`
	Status        JobStatus `json:"status"`
	Phase         string    `json:"phase"`
	IncludeDrafts bool      `json:"include_drafts"`
	Reload        bool      `json:"reload"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks build progress.
type Progress struct {
	TotalPosts     int      `json:"total_posts"`
	PostsRendered  int      `json:"posts_rendered"`
	PostsWritten   int      `json:"posts_written"`
	PostsUnchanged int      `json:"posts_unchanged"`
	Errors         []string `json:"errors"`
}

// NewJob returns a queued job with a fresh id.
func NewJob(includeDrafts, reload bool) *Job {
	now := time.Now()
	return &Job{
		ID:            uuid.NewString(),
		Status:        StatusQueued,
		Phase:         "queued",
		IncludeDrafts: includeDrafts,
		Reload:        reload,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalPosts records how many posts the build covers.
func (j *Job) SetTotalPosts(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPosts = n
	j.UpdatedAt = time.Now()
}

// IncrRendered counts one rendered post.
func (j *Job) IncrRendered() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PostsRendered++
	j.UpdatedAt = time.Now()
}

// IncrWritten counts one written post; unchanged posts were skipped on disk.
func (j *Job) IncrWritten(unchanged bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if unchanged {
		j.Progress.PostsUnchanged++
	} else {
		j.Progress.PostsWritten++
	}
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	p := j.Progress
	p.Errors = errs
	return JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Progress:  p,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
