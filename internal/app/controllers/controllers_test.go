package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/controllers"
	"github.com/emre/hardwarehub/internal/app/directory"
	"github.com/emre/hardwarehub/internal/app/editor"
	"github.com/emre/hardwarehub/internal/app/feed"
	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/routes"
	"github.com/emre/hardwarehub/internal/app/session"
	"github.com/emre/hardwarehub/internal/middleware"
)

// newTestApp wires the full web shell against a fake backend
func newTestApp(t *testing.T, backend http.Handler) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	gw := gateway.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	sessions := session.NewStore(gw, "http://cdn/default.png", zerolog.Nop())
	dir := directory.New(gw, zerolog.Nop())
	ed := editor.New(gw, sessions, dir, zerolog.Nop())
	fd := feed.New(gw, zerolog.Nop())

	router := gin.New()
	routes.SetupRoutes(router, routes.Controllers{
		Auth:    controllers.NewAuthController(sessions, ed, zerolog.Nop()),
		Review:  controllers.NewReviewController(fd, sessions, zerolog.Nop()),
		Admin:   controllers.NewAdminController(dir, ed, zerolog.Nop()),
		Session: middleware.NewSessionMiddleware(sessions),
	})
	return router, sessions
}

func reviewBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/review", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"X","desc":"Y","img":"u","date":"2024-01-01"}]`))
	})
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X","desc":"Y","img":"u","date":"2024-01-01"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"userId":4,"content":"great","date":"2024-01-02T08:00:00Z"}]`))
	})
	mux.HandleFunc("/profiles", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":5,"username":"admin","password":"root","email":"ad@min.co","profileTypeId":2}]`))
	})
	mux.HandleFunc("/profiles/5", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"username":"admin","email":"ad@min.co","profileTypeId":2}`))
	})
	return mux
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, payload
}

func TestFeedAndDetailScenario(t *testing.T) {
	router, _ := newTestApp(t, reviewBackend())

	rec, payload := doJSON(t, router, http.MethodGet, "/api/reviews", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cards := payload["data"].([]interface{})
	if len(cards) != 1 {
		t.Fatalf("expected one card, got %d", len(cards))
	}
	if cards[0].(map[string]interface{})["title"] != "X" {
		t.Errorf("expected card titled X, got %v", cards[0])
	}

	rec, payload = doJSON(t, router, http.MethodGet, "/api/reviews/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := payload["data"].(map[string]interface{})
	review := data["review"].(map[string]interface{})
	if review["title"] != "X" {
		t.Errorf("expected detail title X, got %v", review["title"])
	}
	comments := data["comments"].([]interface{})
	if len(comments) != 1 {
		t.Errorf("expected comment count 1, got %d", len(comments))
	}
}

func TestDetailNotFoundWhenCommentsFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"X"}`))
	})
	mux.HandleFunc("/comment/review/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	router, _ := newTestApp(t, mux)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/reviews/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("partial load must render not-found, got %d", rec.Code)
	}
}

func TestCommentRequiresLogin(t *testing.T) {
	router, _ := newTestApp(t, reviewBackend())

	rec, _ := doJSON(t, router, http.MethodPost, "/api/reviews/1/comments", `{"content":"hi"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous comment must be rejected, got %d", rec.Code)
	}
}

func TestAdminGate(t *testing.T) {
	router, sessions := newTestApp(t, reviewBackend())

	rec, _ := doJSON(t, router, http.MethodGet, "/api/admin/profiles", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous admin access must be forbidden, got %d", rec.Code)
	}

	// login as the admin profile, then the directory opens up
	rec, payload := doJSON(t, router, http.MethodPost, "/api/session/login", `{"username":"admin","password":"root"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %v", rec.Code, payload)
	}
	if !sessions.Current().IsAdmin {
		t.Fatal("expected admin session after login")
	}

	rec, payload = doJSON(t, router, http.MethodGet, "/api/admin/profiles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
	if profiles := payload["data"].([]interface{}); len(profiles) != 1 {
		t.Errorf("expected one directory entry, got %d", len(profiles))
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router, sessions := newTestApp(t, reviewBackend())

	rec, _ := doJSON(t, router, http.MethodPost, "/api/session/login", `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad credentials, got %d", rec.Code)
	}
	if sessions.Current().IsLoggedIn {
		t.Error("session must stay anonymous after failed login")
	}
}
