package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/pkg/token"
)

func newRouter(t *testing.T) (*gin.Engine, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.Use(RequestID())
	r.GET("/protected", NewAuthMiddleware(tokens).RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id").(uint)})
	})
	return r, tokens
}

func TestRequireAuth(t *testing.T) {
	r, tokens := newRouter(t)
	signed, _, err := tokens.Generate(42)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid", "Bearer " + signed, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
			if w.Header().Get(requestIDHeader) == "" {
				t.Fatal("request id header missing")
			}
		})
	}
}

func TestRequireAuthRejectsForeignSignature(t *testing.T) {
	r, _ := newRouter(t)
	other, _ := token.NewManager("other-secret", time.Hour)
	signed, _, _ := other.Generate(1)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
