package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/models"
	"github.com/emre/hardwarehub/internal/pkg/apperrors"
)

func newTestFeed(t *testing.T, handler http.Handler) (*Feed, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	gw := gateway.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	return New(gw, zerolog.Nop()), &hits
}

func TestListKeepsServerOrder(t *testing.T) {
	f, _ := newTestFeed(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":3,"title":"GPU roundup","date":"2024-03-01"},
			{"id":1,"title":"X","desc":"Y","img":"u","date":"2024-01-01"}
		]`))
	}))

	reviews, err := f.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ID != 3 || reviews[1].ID != 1 {
		t.Errorf("server order not preserved: %+v", reviews)
	}
}

func TestLoadJoinsReviewAndComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X","desc":"Y","img":"u","date":"2024-01-01"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":10,"userId":4,"content":"great","date":"2024-01-02T08:00:00Z","user":{"username":"mehmet"}},
			{"id":11,"userId":5,"content":"meh","date":"2024-01-03T08:00:00Z"}
		]`))
	})
	f, _ := newTestFeed(t, mux)

	thread, err := f.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if thread.Review.Title != "X" {
		t.Errorf("expected title X, got %q", thread.Review.Title)
	}
	if thread.CommentCount() != 2 {
		t.Errorf("expected 2 comments, got %d", thread.CommentCount())
	}

	cached, ok := f.Thread(1)
	if !ok || cached != thread {
		t.Error("loaded thread not cached")
	}
}

func TestLoadPartialFailureIsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f, _ := newTestFeed(t, mux)

	_, err := f.Load(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrReviewNotFound) {
		t.Fatalf("expected not-found on partial failure, got %v", err)
	}
	if _, ok := f.Thread(1); ok {
		t.Error("partially loaded thread must not be committed")
	}
}

func TestPostCommentAnonymousRejectedWithoutNetwork(t *testing.T) {
	f, hits := newTestFeed(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := f.PostComment(context.Background(), models.AnonymousSession(), 1, "hi")
	if !errors.Is(err, apperrors.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("expected no network call, got %d", atomic.LoadInt32(hits))
	}
}

func TestPostCommentPrependsOptimistically(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X","date":"2024-01-01"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"userId":4,"content":"first","date":"2024-01-02T08:00:00Z"}]`))
	})
	mux.HandleFunc("/comment", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":11,"userId":7,"content":"mine"}`))
	})
	f, _ := newTestFeed(t, mux)

	thread, err := f.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before := thread.CommentCount()

	sess := models.Session{IsLoggedIn: true, ID: 7, Name: "ayse", Photo: "http://cdn/a.png"}
	posted, err := f.PostComment(context.Background(), sess, 1, "mine")
	if err != nil {
		t.Fatalf("PostComment failed: %v", err)
	}

	cached, _ := f.Thread(1)
	if cached.CommentCount() != before+1 {
		t.Fatalf("expected thread to grow by exactly one, got %d -> %d", before, cached.CommentCount())
	}
	if cached.Comments[0].ID != posted.ID || cached.Comments[0].Content != "mine" {
		t.Errorf("new comment not prepended: %+v", cached.Comments[0])
	}
	if cached.Comments[0].User == nil || cached.Comments[0].User.Username != "ayse" {
		t.Errorf("optimistic comment missing session identity: %+v", cached.Comments[0].User)
	}
	if cached.Comments[0].Date.Time.IsZero() {
		t.Error("optimistic comment missing client timestamp")
	}
}

func TestPostCommentEmptyContentRejected(t *testing.T) {
	f, hits := newTestFeed(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	sess := models.Session{IsLoggedIn: true, ID: 7, Name: "ayse"}
	_, err := f.PostComment(context.Background(), sess, 1, "   ")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("expected no network call, got %d", atomic.LoadInt32(hits))
	}
}

func TestLoadCancelledContextDoesNotCommit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	f, _ := newTestFeed(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Load(ctx, 1); err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if _, ok := f.Thread(1); ok {
		t.Error("cancelled load must not commit state")
	}
}
