package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   false,
		"error":     map[string]string{"code": code, "message": message},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func TestStore_Refresh(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []Task{
			{ID: "a", Title: "first"},
			{ID: "b", Title: "second"},
		})
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token-123"), quietLogger())

	require.NoError(t, store.Refresh(context.Background()))
	require.Equal(t, "Bearer token-123", gotAuth)

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	require.Equal(t, "first", tasks[0].Title)
	require.Empty(t, store.Err())
	require.False(t, store.Loading())
}

func TestStore_RefreshBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose

	store := NewStore(New(srv.URL, "token"), quietLogger())

	err := store.Refresh(context.Background())
	require.Error(t, err)

	// The list degrades to empty with the fixed message instead of
	// propagating the failure into the UI state.
	require.Empty(t, store.Tasks())
	require.Equal(t, BackendUnavailableMessage, store.Err())
}

func TestStore_RefreshClearsStaleError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []Task{})
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token"), quietLogger())
	store.errMsg = BackendUnavailableMessage

	require.NoError(t, store.Refresh(context.Background()))
	require.Empty(t, store.Err())
}

func TestStore_CreatePrepends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, []Task{{ID: "old", Title: "existing"}})
		case http.MethodPost:
			var input TaskInput
			json.NewDecoder(r.Body).Decode(&input)
			writeEnvelope(w, http.StatusCreated, Task{ID: "new", Title: input.Title})
		}
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token"), quietLogger())
	require.NoError(t, store.Refresh(context.Background()))

	created, err := store.Create(context.Background(), TaskInput{Title: "fresh"})
	require.NoError(t, err)
	require.Equal(t, "new", created.ID)

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	require.Equal(t, "new", tasks[0].ID)
	require.Equal(t, "old", tasks[1].ID)
}

func TestStore_CreateFailureLeavesStateUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, []Task{{ID: "old"}})
		case http.MethodPost:
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed")
		}
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token"), quietLogger())
	require.NoError(t, store.Refresh(context.Background()))

	_, err := store.Create(context.Background(), TaskInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "VALIDATION_ERROR", apiErr.Code)

	require.Len(t, store.Tasks(), 1)
	require.Empty(t, store.Err())
}

func TestStore_DeleteRemovesByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, []Task{{ID: "keep"}, {ID: "drop"}})
		case http.MethodDelete:
			writeEnvelope(w, http.StatusOK, map[string]string{})
		}
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token"), quietLogger())
	require.NoError(t, store.Refresh(context.Background()))

	require.NoError(t, store.Delete(context.Background(), "drop"))

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "keep", tasks[0].ID)
}

func TestStore_DeleteFailureKeepsTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, []Task{{ID: "keep"}})
		case http.MethodDelete:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		}
	}))
	defer srv.Close()

	store := NewStore(New(srv.URL, "token"), quietLogger())
	require.NoError(t, store.Refresh(context.Background()))

	err := store.Delete(context.Background(), "keep")
	require.Error(t, err)
	require.Len(t, store.Tasks(), 1)
}
