package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/structs"
	"github.com/thangnd96/hybrid-app/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Errors surfaced by the auth service
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
)

// HashPassword hashes the user's password using bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPasswordHash verifies a password against its stored hash
func CheckPasswordHash(password, hashedPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return errors.New("incorrect password")
	}
	return nil
}

// AvatarURL derives the avatar image reference for a username
func AvatarURL(username string) string {
	return fmt.Sprintf("https://dummyjson.com/icon/%s/128", username)
}

// UserInitial is the avatar fallback: the username's first rune, uppercased
func UserInitial(username string) string {
	for _, r := range username {
		return strings.ToUpper(string(r))
	}
	return "U"
}

// AuthService validates credentials against the local roster first and the
// remote user API second. It never commits users to the session store;
// callers do that.
type AuthService struct {
	api   *api.Client
	store *SessionStore
}

// NewAuthService wires the auth service to its API client and session store
func NewAuthService(client *api.Client, store *SessionStore) *AuthService {
	return &AuthService{api: client, store: store}
}

// Login resolves credentials to a user. A roster entry with a matching
// username and password resolves locally without any remote call; anything
// else falls through to the remote login endpoint. Remote failure is
// reported as a generic invalid-credentials error.
func (a *AuthService) Login(username, password string) (structs.User, error) {
	if local, ok := a.store.FindRosterUser(username); ok {
		if CheckPasswordHash(password, local.Password) == nil {
			log.Printf("Login: resolved %s from local roster", username)
			return local, nil
		}
	}

	user, err := a.api.Login(username, password)
	if err != nil {
		log.Printf("Login: remote login failed for %s: %v", username, err)
		return structs.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Register builds a new user record from the sign-up form: a freshly
// generated identifier, a derived avatar reference, a hashed password, and
// a derived access token. Registration is rejected when the username is
// already on the roster.
func (a *AuthService) Register(body structs.RegisterBody) (structs.User, error) {
	if _, ok := a.store.FindRosterUser(body.Username); ok {
		return structs.User{}, ErrUserExists
	}

	hashedPassword, err := HashPassword(body.Password)
	if err != nil {
		return structs.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := structs.User{
		ID:          uuid.New().String(),
		Username:    body.Username,
		Email:       body.Email,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Image:       AvatarURL(body.Username),
		AccessToken: uuid.New().String(),
		Password:    hashedPassword,
	}
	return user, nil
}

// AuthHandlers exposes the auth service over the local UI routes
type AuthHandlers struct {
	auth  *AuthService
	store *SessionStore
}

// NewAuthHandlers builds the HTTP surface for login/register/logout
func NewAuthHandlers(auth *AuthService, store *SessionStore) *AuthHandlers {
	return &AuthHandlers{auth: auth, store: store}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser handles POST /login
func (h *AuthHandlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Println("LoginUser: Invalid method")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Unable to parse request body")
		return
	}

	if err := utils.ValidateNonEmptyFields(map[string]string{
		"username": req.Username,
		"password": req.Password,
	}); err != nil {
		utils.HandleError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("LoginUser: Attempting login for username: %s", req.Username)
	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error(), err)
		return
	}

	h.store.Login(user)
	log.Printf("LoginUser: Login successful for user %s", user.Username)
	utils.RespondJSON(w, http.StatusOK, user)
}

// RegisterUser handles POST /register
func (h *AuthHandlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var body structs.RegisterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Unable to parse request body")
		return
	}

	// Validate each field and block submission on the first failure
	if err := utils.ValidateEmail(body.Email); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if err := utils.ValidatePassword(body.Password); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}
	if err := utils.ValidateUsername(body.Username); err != nil {
		utils.HandleError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(body)
	if err == ErrUserExists {
		utils.RespondError(w, http.StatusConflict, ErrUserExists.Error())
		return
	}
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error registering user", err)
		return
	}

	h.store.Register(user)
	log.Printf("RegisterUser: Registered new user %s", user.Username)
	utils.RespondJSON(w, http.StatusCreated, user)
}

// LogoutHandler handles POST /logout
func (h *AuthHandlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RequireSession guards routes that need an authenticated user
func (h *AuthHandlers) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store.CurrentUser() == nil {
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}
