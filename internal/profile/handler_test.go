package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/smart-brain-api/internal/store"
)

type stubUserStore struct {
	user    *store.User
	findErr error

	updated   bool
	updateErr error

	lastUpdateID   int
	lastUpdateName string
}

func (s *stubUserStore) FindUserByID(ctx context.Context, id int) (*store.User, error) {
	return s.user, s.findErr
}

func (s *stubUserStore) UpdateProfile(ctx context.Context, id int, name string, age *int, pet *string) (bool, error) {
	s.lastUpdateID = id
	s.lastUpdateName = name
	return s.updated, s.updateErr
}

func newProfileRouter(users UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/profile/:id", GetHandler(users))
	router.POST("/profile/:id", UpdateHandler(users))
	return router
}

func TestGetProfileFound(t *testing.T) {
	users := &stubUserStore{user: &store.User{ID: 7, Email: "a@b.com", Name: "Ann"}}
	router := newProfileRouter(users)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var user store.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.ID != 7 || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	router := newProfileRouter(&stubUserStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetProfileInvalidID(t *testing.T) {
	router := newProfileRouter(&stubUserStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetProfileStoreFailure(t *testing.T) {
	router := newProfileRouter(&stubUserStore{findErr: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/7", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestUpdateProfileSuccess(t *testing.T) {
	users := &stubUserStore{updated: true}
	router := newProfileRouter(users)

	body := bytes.NewBufferString(`{"name":"Bob","age":30,"pet":"cat"}`)
	req := httptest.NewRequest(http.MethodPost, "/profile/7", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if users.lastUpdateID != 7 || users.lastUpdateName != "Bob" {
		t.Fatalf("unexpected update arguments: id=%d name=%q", users.lastUpdateID, users.lastUpdateName)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	router := newProfileRouter(&stubUserStore{updated: false})

	body := bytes.NewBufferString(`{"name":"Bob"}`)
	req := httptest.NewRequest(http.MethodPost, "/profile/999", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
