package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	apperrors "todo-list.com/todo-list/internal/errors"
)

const seedFeed = `{
	"todos": [
		{"id": 1, "todo": "Buy milk", "completed": false, "description": "2%", "creation_date": "2024-11-15T10:00:00Z"},
		{"id": 2, "todo": "Go to gym", "completed": true},
		{"id": 3, "todo": "Buy bread", "completed": false, "creation_date": "17/11/24"}
	],
	"total": 3,
	"skip": 0,
	"limit": 30
}`

func newTestClient(url string, pageSize int) *Client {
	return NewClient(url, 5*time.Second, pageSize, log.New(io.Discard))
}

func TestClient_FetchAllDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, seedFeed)
	}))
	defer srv.Close()

	batch, err := newTestClient(srv.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if batch.Total != 3 || len(batch.Tasks) != 3 {
		t.Fatalf("expected 3 tasks with total 3, got %d tasks total %d", len(batch.Tasks), batch.Total)
	}

	first := batch.Tasks[0]
	if first.ID != 1 || first.Title != "Buy milk" || first.IsCompleted {
		t.Errorf("unexpected first task: %+v", first)
	}
	if first.DescriptionText == nil || *first.DescriptionText != "2%" {
		t.Errorf("expected description 2%%, got %v", first.DescriptionText)
	}
	if want := time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC); first.CreationDate == nil || !first.CreationDate.Equal(want) {
		t.Errorf("expected creation date %v, got %v", want, first.CreationDate)
	}

	second := batch.Tasks[1]
	if second.DescriptionText != nil || second.CreationDate != nil {
		t.Errorf("expected optional fields to stay unset, got %+v", second)
	}
	if !second.IsCompleted {
		t.Error("expected second task to be completed")
	}

	if want := time.Date(2024, 11, 17, 0, 0, 0, 0, time.UTC); batch.Tasks[2].CreationDate == nil || !batch.Tasks[2].CreationDate.Equal(want) {
		t.Errorf("expected dd/MM/yy date to parse to %v, got %v", want, batch.Tasks[2].CreationDate)
	}
}

func TestDecodePage_IntegralFloats(t *testing.T) {
	body := []byte(`{"todos":[{"id":7.0,"todo":"x","completed":false},{"id":-32768,"todo":"y","completed":true}],"total":2.0}`)

	tasks, total, err := decodePage(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if total != 2 || len(tasks) != 2 {
		t.Fatalf("expected 2 tasks with total 2, got %d tasks total %d", len(tasks), total)
	}
	if tasks[0].ID != 7 || tasks[1].ID != -32768 {
		t.Errorf("unexpected ids %d, %d", tasks[0].ID, tasks[1].ID)
	}
}

func TestClient_FetchAllWalksPages(t *testing.T) {
	const total = 5
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		fmt.Fprint(w, `{"todos":[`)
		for i := skip; i < skip+limit && i < total; i++ {
			if i > skip {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"todo":"task %d","completed":false}`, i+1, i+1)
		}
		fmt.Fprintf(w, `],"total":%d}`, total)
	}))
	defer srv.Close()

	batch, err := newTestClient(srv.URL, 2).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(batch.Tasks) != total {
		t.Fatalf("expected %d tasks, got %d", total, len(batch.Tasks))
	}
	for i, task := range batch.Tasks {
		if task.ID != int16(i+1) {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, task.ID)
		}
	}
	if n := requests.Load(); n != 3 {
		t.Errorf("expected 3 page requests, got %d", n)
	}
}

func TestClient_FetchAllFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed json", http.StatusOK, `{"todos": [`},
		{"missing total", http.StatusOK, `{"todos": []}`},
		{"empty title", http.StatusOK, `{"todos":[{"id":1,"todo":"","completed":false}],"total":1}`},
		{"id out of int16 range", http.StatusOK, `{"todos":[{"id":40000,"todo":"x","completed":false}],"total":1}`},
		{"fractional id", http.StatusOK, `{"todos":[{"id":1.5,"todo":"x","completed":false}],"total":1}`},
		{"bad date", http.StatusOK, `{"todos":[{"id":1,"todo":"x","completed":false,"creation_date":"yesterday"}],"total":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, 0).FetchAll(context.Background())
			if !errors.Is(err, apperrors.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})
	}
}

func TestClient_FetchAllUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 0).FetchAll(context.Background())
	if !errors.Is(err, apperrors.ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if d, err := ParseDate(""); err != nil || d != nil {
		t.Errorf("expected empty string to be an unset date, got %v, %v", d, err)
	}

	d, err := ParseDate("2024-11-15")
	if err != nil {
		t.Fatalf("parse bare date: %v", err)
	}
	if want := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("expected %v, got %v", want, d)
	}

	if _, err := ParseDate("15 Nov"); err == nil {
		t.Error("expected an error for an unknown layout")
	}
}
