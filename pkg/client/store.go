package client

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// BackendUnavailableMessage is the fixed user-visible message set when the
// task list cannot be fetched.
const BackendUnavailableMessage = "Backend not available"

// Store holds the client-side task state: the ordered task list, a
// loading flag and a nullable error message. Every operation returns its
// error so the caller decides what to surface; the store itself only
// degrades the list state on refresh failure. State is mutex-guarded but
// overlapping calls are not serialized: the last write wins.
type Store struct {
	mu  sync.Mutex
	api *Client
	log *logrus.Logger

	tasks   []Task
	loading bool
	errMsg  string
}

// NewStore creates a Store backed by the given API client.
func NewStore(api *Client, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		api:   api,
		log:   log,
		tasks: []Task{},
	}
}

// Refresh replaces the task list from the server. On failure the list
// degrades to empty with a fixed error message instead of propagating a
// broken state to the UI.
func (s *Store) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	tasks, err := s.api.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("failed to fetch tasks")
		s.tasks = []Task{}
		s.errMsg = BackendUnavailableMessage
		return err
	}

	s.tasks = tasks
	s.errMsg = ""
	return nil
}

// Create posts a new task and prepends the server-returned copy to the
// list. On failure the list is left unchanged.
func (s *Store) Create(ctx context.Context, input TaskInput) (*Task, error) {
	task, err := s.api.CreateTask(ctx, input)
	if err != nil {
		s.log.WithError(err).Warn("failed to create task")
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]Task{*task}, s.tasks...)
	s.mu.Unlock()

	return task, nil
}

// Delete removes a task on the server and drops it from the list by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.log.WithError(err).Warn("failed to delete task")
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	return nil
}

// Tasks returns a copy of the current task list.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the current user-visible error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
