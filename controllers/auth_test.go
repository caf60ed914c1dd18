package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/structs"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("testpassword")
	if err != nil {
		t.Fatalf("Error hashing password: %v", err)
	}

	// Compare with correct password
	if err := CheckPasswordHash("testpassword", hashed); err != nil {
		t.Error("Password verification failed with correct password")
	}

	// Compare with incorrect password
	if err := CheckPasswordHash("wrongpassword", hashed); err == nil {
		t.Error("Password verification succeeded with incorrect password")
	}
}

func TestUserInitial(t *testing.T) {
	if got := UserInitial("alice"); got != "A" {
		t.Errorf("Expected A, got %s", got)
	}
	if got := UserInitial(""); got != "U" {
		t.Errorf("Expected fallback U, got %s", got)
	}
}

// newAuthFixture builds an auth service over a fresh store and a remote
// endpoint that counts its hits.
func newAuthFixture(t *testing.T, remote http.HandlerFunc, hits *int32) (*AuthService, *SessionStore, *httptest.Server) {
	t.Helper()
	setupTestDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		remote(w, r)
	}))
	t.Cleanup(srv.Close)

	store := NewSessionStore("auth-storage", "")
	return NewAuthService(api.NewClient(srv.URL), store), store, srv
}

func registeredAlice(t *testing.T, store *SessionStore) structs.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	alice := testUser("alice", "tok-alice")
	alice.Password = string(hashed)
	store.Register(alice)
	return alice
}

func TestLoginResolvesFromLocalRoster(t *testing.T) {
	var hits int32
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "should not be called", http.StatusInternalServerError)
	}, &hits)
	registeredAlice(t, store)

	user, err := auth.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Local login failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Expected alice, got %s", user.Username)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("Local roster hit must not issue a remote call")
	}
}

func TestLoginWrongPasswordFallsThroughToRemote(t *testing.T) {
	var hits int32
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}, &hits)
	registeredAlice(t, store)

	_, err := auth.Login("alice", "wrong")
	if err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected exactly 1 remote call, got %d", atomic.LoadInt32(&hits))
	}
}

func TestLoginRemoteSuccess(t *testing.T) {
	auth, _, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/login" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(structs.User{
			ID:          "5",
			Username:    "emilys",
			AccessToken: "remote-token",
		})
	}, nil)

	user, err := auth.Login("emilys", "emilyspass")
	if err != nil {
		t.Fatalf("Remote login failed: %v", err)
	}
	if user.AccessToken != "remote-token" {
		t.Errorf("Expected remote token, got %q", user.AccessToken)
	}
}

func TestRegisterBuildsCompleteUser(t *testing.T) {
	auth, _, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	user, err := auth.Register(structs.RegisterBody{
		Email:     "new@example.com",
		Password:  "strongpassword",
		Username:  "newbie",
		FirstName: "New",
		LastName:  "Bie",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := uuid.Parse(user.ID); err != nil {
		t.Errorf("Expected a uuid identifier, got %q", user.ID)
	}
	if user.Image != "https://dummyjson.com/icon/newbie/128" {
		t.Errorf("Unexpected avatar reference %q", user.Image)
	}
	if user.AccessToken == "" {
		t.Error("Expected a derived access token")
	}
	if err := CheckPasswordHash("strongpassword", user.Password); err != nil {
		t.Error("Stored password hash does not verify")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	registeredAlice(t, store)

	_, err := auth.Register(structs.RegisterBody{
		Email:    "alice2@example.com",
		Password: "strongpassword",
		Username: "alice",
	})
	if err != ErrUserExists {
		t.Errorf("Expected ErrUserExists, got %v", err)
	}
	if got := len(store.Roster()); got != 1 {
		t.Errorf("Failed register must not grow the roster, got %d", got)
	}
}

func postJSON(t *testing.T, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Error encoding request: %v", err)
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	h := NewAuthHandlers(auth, store)

	req := postJSON(t, "/register", structs.RegisterBody{
		Email:    "invalid-email",
		Password: "strongpassword",
		Username: "testuser",
	})
	rr := httptest.NewRecorder()
	h.RegisterUser(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, but got %d", http.StatusBadRequest, rr.Code)
	}
	expectedMessage := "Invalid email format"
	if !strings.Contains(rr.Body.String(), expectedMessage) {
		t.Errorf("Expected error message '%s', but got '%s'", expectedMessage, rr.Body.String())
	}
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	h := NewAuthHandlers(auth, store)

	req := postJSON(t, "/register", structs.RegisterBody{
		Email:    "test@example.com",
		Password: "123",
		Username: "testuser",
	})
	rr := httptest.NewRecorder()
	h.RegisterUser(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, but got %d", http.StatusBadRequest, rr.Code)
	}
	expectedMessage := "Password must be at least 8 characters long"
	if !strings.Contains(rr.Body.String(), expectedMessage) {
		t.Errorf("Expected error message '%s', but got '%s'", expectedMessage, rr.Body.String())
	}
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	h := NewAuthHandlers(auth, store)

	called := false
	guarded := h.RequireSession(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/posts/view?id=1", nil)
	rr := httptest.NewRecorder()
	guarded(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for anonymous access, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Authentication required") {
		t.Errorf("Expected JSON error payload, got %q", rr.Body.String())
	}
	if called {
		t.Error("Guarded handler ran without a session")
	}

	store.Login(testUser("alice", "tok-alice"))
	rr = httptest.NewRecorder()
	guarded(rr, httptest.NewRequest("GET", "/posts/view?id=1", nil))
	if !called {
		t.Error("Guarded handler did not run for a logged-in user")
	}
}

func TestLoginHandlerCommitsSession(t *testing.T) {
	auth, store, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}, nil)
	registeredAlice(t, store)
	store.Logout()
	h := NewAuthHandlers(auth, store)

	req := postJSON(t, "/login", map[string]string{"username": "alice", "password": "pw1"})
	rr := httptest.NewRecorder()
	h.LoginUser(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if store.Token() != "tok-alice" {
		t.Errorf("Expected session committed with tok-alice, got %q", store.Token())
	}
}
