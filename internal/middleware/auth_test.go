package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/profile"
	"github.com/jfarias-dev/ligauni/pkg/token"
)

const testSecret = "unit-test-secret"

type fakeProfileRepo struct {
	byAuthID map[string]*profile.Profile
}

func (r *fakeProfileRepo) GetByID(id uint) (*profile.Profile, error) {
	for _, p := range r.byAuthID {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) GetByAuthID(authID string) (*profile.Profile, error) {
	return r.byAuthID[authID], nil
}

type whoami struct {
	Authenticated bool   `json:"authenticated"`
	Admin         bool   `json:"admin"`
	ProfileID     uint   `json:"profile_id"`
	Username      string `json:"username"`
}

func newIdentityRouter(repo profile.ProfileRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(testSecret, repo))
	r.GET("/whoami", func(c *gin.Context) {
		actor := identity.FromContext(c)
		c.JSON(http.StatusOK, whoami{
			Authenticated: actor.Authenticated,
			Admin:         actor.Admin,
			ProfileID:     actor.ProfileID,
			Username:      actor.Username,
		})
	})
	return r
}

func getWhoami(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeWhoami(t *testing.T, w *httptest.ResponseRecorder) whoami {
	t.Helper()
	var out whoami
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestIdentityWithoutHeaderIsAnonymous(t *testing.T) {
	r := newIdentityRouter(&fakeProfileRepo{})

	w := getWhoami(t, r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	actor := decodeWhoami(t, w)
	if actor.Authenticated || actor.Admin || actor.ProfileID != 0 {
		t.Fatalf("expected anonymous actor, got %+v", actor)
	}
}

func TestIdentityResolvesValidToken(t *testing.T) {
	p := &profile.Profile{AuthID: "auth-42", Username: "caro"}
	p.Model = gorm.Model{ID: 7}
	r := newIdentityRouter(&fakeProfileRepo{byAuthID: map[string]*profile.Profile{"auth-42": p}})

	jwt, err := token.GenerateJWT("auth-42", "caro", []string{identity.RoleAdmin}, testSecret, 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := getWhoami(t, r, "Bearer "+jwt)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	actor := decodeWhoami(t, w)
	if !actor.Authenticated || !actor.Admin {
		t.Fatalf("token roles not resolved: %+v", actor)
	}
	if actor.ProfileID != 7 || actor.Username != "caro" {
		t.Fatalf("profile mirror not resolved: %+v", actor)
	}
}

func TestIdentityWithoutMirrorRowStillAuthenticates(t *testing.T) {
	// Freshly registered users may not have a local profile row yet.
	r := newIdentityRouter(&fakeProfileRepo{})

	jwt, err := token.GenerateJWT("auth-99", "nuevo", []string{identity.RolePlanillero}, testSecret, 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := getWhoami(t, r, "Bearer "+jwt)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	actor := decodeWhoami(t, w)
	if !actor.Authenticated || actor.ProfileID != 0 {
		t.Fatalf("expected authenticated actor without profile id, got %+v", actor)
	}
}

func TestIdentityRejectsMalformedHeader(t *testing.T) {
	r := newIdentityRouter(&fakeProfileRepo{})

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		w := getWhoami(t, r, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestIdentityRejectsExpiredToken(t *testing.T) {
	r := newIdentityRouter(&fakeProfileRepo{})

	jwt, err := token.GenerateJWT("auth-42", "caro", nil, testSecret, -5)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := getWhoami(t, r, "Bearer "+jwt)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestIdentityRejectsForeignSignature(t *testing.T) {
	r := newIdentityRouter(&fakeProfileRepo{})

	jwt, err := token.GenerateJWT("auth-42", "caro", nil, "another-secret", 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := getWhoami(t, r, "Bearer "+jwt)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
