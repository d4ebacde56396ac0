package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"canopy/backend/internal/apperror"
)

func run(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func decodeError(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var out struct {
		Error map[string]string `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	return out.Error
}

func TestError_Operational(t *testing.T) {
	w := run(t, func(c *gin.Context) {
		Error(c, zerolog.Nop(), apperror.Operational(
			"canopy.1.error.user.user_not_found", "user-not-found", 404, "User not found",
		))
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeError(t, w.Body.Bytes())
	if body["code"] != "user-not-found" {
		t.Errorf("code = %q, want user-not-found", body["code"])
	}
	if body["name"] != "canopy.1.error.user.user_not_found" {
		t.Errorf("name = %q", body["name"])
	}
}

func TestError_Unknown(t *testing.T) {
	w := run(t, func(c *gin.Context) {
		Error(c, zerolog.Nop(), errors.New("pool exhausted"))
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeError(t, w.Body.Bytes())
	if body["code"] != "internal" {
		t.Errorf("code = %q, want internal", body["code"])
	}
	if body["message"] == "pool exhausted" {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestData_Envelope(t *testing.T) {
	w := run(t, func(c *gin.Context) {
		Data(c, http.StatusOK, gin.H{"id": "w-1"}, gin.H{"token": "t"})
	})
	var out struct {
		Data map[string]string `json:"data"`
		Meta map[string]string `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Data["id"] != "w-1" || out.Meta["token"] != "t" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestData_Empty(t *testing.T) {
	w := run(t, func(c *gin.Context) {
		Data(c, http.StatusNoContent, nil, nil)
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}
