package controllers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/thangnd96/hybrid-app/database"
	"github.com/thangnd96/hybrid-app/structs"
)

// sessionBlobVersion is the current schema version of the persisted blob.
// Version 0 (missing or unknown) always rehydrates as empty state.
const sessionBlobVersion = 1

// sessionBlob is the subset of session state written to durable storage on
// every mutation. The roster is persisted separately as table rows so the
// blob stays small.
type sessionBlob struct {
	Token string        `json:"token"`
	User  *structs.User `json:"user"`
}

// SessionStore holds the current user, the token derived from that user,
// and the roster of all locally registered users. At most one user is
// current; the roster is append-only and never pruned.
type SessionStore struct {
	mu         sync.Mutex
	storageKey string
	user       *structs.User
	token      string
	roster     []structs.User
}

// NewSessionStore creates a store and rehydrates it from durable storage.
// oldKey, when non-empty and different from storageKey, names an obsolete
// blob to delete before rehydration. Storage failures fall back to empty
// state rather than erroring out.
func NewSessionStore(storageKey, oldKey string) *SessionStore {
	s := &SessionStore{storageKey: storageKey}

	if oldKey != "" && oldKey != storageKey {
		database.DeleteSessionKey(oldKey)
	}

	s.rehydrate()
	return s
}

func (s *SessionStore) rehydrate() {
	// The roster outlives any session: it loads regardless of what happens
	// to the blob, so a corrupt or outdated blob never erases registrations.
	roster, err := database.FetchRoster()
	if err != nil {
		log.Printf("SessionStore: error loading roster: %v", err)
	} else {
		s.roster = roster
	}

	version, data, err := database.LoadSessionBlob(s.storageKey)
	if err != nil {
		log.Printf("SessionStore: error loading persisted state: %v", err)
		return
	}

	blob, ok := migrateSessionBlob(version, data)
	if !ok {
		return
	}
	s.user = blob.User
	s.token = blob.Token
}

// migrateSessionBlob upgrades a persisted blob to the current version.
// Unknown or missing versions are treated as version 0, which is empty
// state; a corrupt payload is treated the same way.
func migrateSessionBlob(version int, data []byte) (sessionBlob, bool) {
	switch version {
	case sessionBlobVersion:
		var blob sessionBlob
		if err := json.Unmarshal(data, &blob); err != nil {
			log.Printf("SessionStore: corrupt persisted state, starting empty: %v", err)
			return sessionBlob{}, false
		}
		return blob, true
	default:
		return sessionBlob{}, false
	}
}

func (s *SessionStore) persist() {
	blob := sessionBlob{Token: s.token, User: s.user}
	data, err := json.Marshal(blob)
	if err != nil {
		log.Printf("SessionStore: error serializing state: %v", err)
		return
	}
	database.SaveSessionBlob(s.storageKey, sessionBlobVersion, data)
}

// Login sets the current user and derives the token from the user's
// embedded access token. The roster is untouched.
func (s *SessionStore) Login(user structs.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.user = &u
	s.token = user.AccessToken
	s.persist()
}

// Register logs the user in and appends it to the roster
func (s *SessionStore) Register(user structs.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.user = &u
	s.token = user.AccessToken
	s.roster = append(s.roster, user)
	if err := database.AddRosterUser(user); err != nil {
		log.Printf("SessionStore: error persisting roster entry for %s: %v", user.Username, err)
	}
	s.persist()
}

// Logout clears the current user and token. The roster survives.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.persist()
}

// CurrentUser returns a copy of the current user, or nil when logged out
func (s *SessionStore) CurrentUser() *structs.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, empty when logged out
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Roster returns a copy of all locally registered users
func (s *SessionStore) Roster() []structs.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := make([]structs.User, len(s.roster))
	copy(roster, s.roster)
	return roster
}

// FindRosterUser looks up a roster entry by exact, case-sensitive username
func (s *SessionStore) FindRosterUser(username string) (structs.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.roster {
		if u.Username == username {
			return u, true
		}
	}
	return structs.User{}, false
}
