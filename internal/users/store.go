package users

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned when no user has the requested id.
var ErrNotFound = errors.New("user not found")

// User is a single record held by the Store.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store is a thread-safe, in-memory, insertion-ordered list of users.
// All public methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users []User
}

// NewStore creates a store holding a copy of seed, in order.
func NewStore(seed ...User) *Store {
	s := &Store{users: make([]User, 0, len(seed))}
	s.users = append(s.users, seed...)
	return s
}

// NewSeededStore creates a store with the four records the service starts
// with.
func NewSeededStore() *Store {
	return NewStore(
		User{ID: 1, Name: "Juan"},
		User{ID: 2, Name: "Ana"},
		User{ID: 3, Name: "Miguel"},
		User{ID: 4, Name: "Maria"},
	)
}

// ParseID converts a path segment to a user id the way a lenient integer
// cast does: leading whitespace and an optional sign are accepted, and
// parsing stops at the first non-digit. It reports false when no digits
// lead the input.
func ParseID(text string) (int, bool) {
	s := strings.TrimLeft(text, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Find returns the user with the given id.
func (s *Store) Find(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return User{}, false
	}
	return s.users[i], true
}

// List returns a copy of all users in insertion order.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of stored users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Create appends a user with the next free id and returns it. Ids are
// allocated as one more than the largest id currently stored, so a
// deletion never causes a later id to be reused while its owner survives.
func (s *Store) Create(name string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 1
	for _, u := range s.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	u := User{ID: next, Name: name}
	s.users = append(s.users, u)
	return u
}

// Update renames the user with the given id in place.
func (s *Store) Update(id int, name string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return User{}, ErrNotFound
	}
	s.users[i].Name = name
	return s.users[i], nil
}

// Delete removes the user with the given id and returns it.
func (s *Store) Delete(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return User{}, ErrNotFound
	}
	u := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return u, nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
