// Package auth implements the credential collaborator: a user registry
// persisted in the store plus login, registration, password change and
// session resumption. Failures surface as booleans, never as errors, and
// identity travels explicitly instead of through globals.
//
// Credentials are stored in plain text, matching the persisted layout this
// store inherits. Hardening them is an acknowledged non-goal.
package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"monedero/internal/storage"
)

const (
	usersKey    = "app_users"
	lastUserKey = "last_logged_in_user"
)

// User is one registered credential pair.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Registry is the owned collection of users.
type Registry interface {
	FindByName(name string) (User, bool)
	Add(u User) error
	Update(u User) error
}

// StoreRegistry keeps the user list as a JSON array in the store and seeds
// a default admin account on first use.
type StoreRegistry struct {
	mu    sync.Mutex
	store storage.Store
}

func NewStoreRegistry(store storage.Store) *StoreRegistry {
	return &StoreRegistry{store: store}
}

func (r *StoreRegistry) load() []User {
	raw, ok, err := r.store.Load(usersKey)
	if err != nil || !ok {
		if err != nil {
			slog.Warn("Failed loading user registry, falling back to default", "error", err)
		}
		return []User{{Name: "admin", Password: "admin"}}
	}
	var users []User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		slog.Warn("Corrupt user registry, falling back to default", "error", err)
		return []User{{Name: "admin", Password: "admin"}}
	}
	return users
}

func (r *StoreRegistry) save(users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.store.Save(usersKey, string(data)); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

func (r *StoreRegistry) FindByName(name string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.load() {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}

func (r *StoreRegistry) Add(u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	users = append(users, u)
	return r.save(users)
}

func (r *StoreRegistry) Update(u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.load()
	for i := range users {
		if users[i].Name == u.Name {
			users[i] = u
		}
	}
	return r.save(users)
}

// Service holds the current identity and drives the registry.
type Service struct {
	mu       sync.Mutex
	registry Registry
	store    storage.Store
	current  *User
}

func NewService(registry Registry, store storage.Store) *Service {
	return &Service{registry: registry, store: store}
}

// Current returns the logged-in user, if any.
func (s *Service) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// Login matches the credentials against the registry. On success the user
// becomes current and is remembered for session resumption.
func (s *Service) Login(name, password string) bool {
	u, ok := s.registry.FindByName(name)
	if !ok || u.Password != password {
		return false
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	if err := s.store.Save(lastUserKey, name); err != nil {
		slog.Warn("Failed remembering last user", "user", name, "error", err)
	}
	return true
}

// Register adds a new user and logs it in. A taken name fails.
func (s *Service) Register(name, password string) bool {
	if name == "" || password == "" {
		return false
	}
	if _, exists := s.registry.FindByName(name); exists {
		return false
	}
	u := User{Name: name, Password: password}
	if err := s.registry.Add(u); err != nil {
		slog.Error("Failed adding user", "user", name, "error", err)
		return false
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	if err := s.store.Save(lastUserKey, name); err != nil {
		slog.Warn("Failed remembering last user", "user", name, "error", err)
	}
	return true
}

// ChangePassword replaces the current user's password when the old one
// matches.
func (s *Service) ChangePassword(oldPassword, newPassword string) bool {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil || current.Password != oldPassword {
		return false
	}
	updated := User{Name: current.Name, Password: newPassword}
	if err := s.registry.Update(updated); err != nil {
		slog.Error("Failed updating password", "user", current.Name, "error", err)
		return false
	}
	s.mu.Lock()
	s.current = &updated
	s.mu.Unlock()
	return true
}

// Logout clears the current identity and the resumption marker.
func (s *Service) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.store.Remove(lastUserKey); err != nil {
		slog.Warn("Failed clearing last user", "error", err)
	}
}

// Resume restores the identity remembered by the last successful login,
// if that user still exists.
func (s *Service) Resume() bool {
	name, ok, err := s.store.Load(lastUserKey)
	if err != nil || !ok {
		return false
	}
	u, found := s.registry.FindByName(name)
	if !found {
		return false
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	return true
}
