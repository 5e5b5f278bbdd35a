package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alfagnish/usuarios-api/internal/events"
	"github.com/alfagnish/usuarios-api/internal/users"
)

// UsersHandler provides CRUD endpoints over the user store. Every
// successful mutation is published to the change feed.
type UsersHandler struct {
	store *users.Store
	hub   *events.Hub
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store *users.Store, hub *events.Hub) *UsersHandler {
	return &UsersHandler{store: store, hub: hub}
}

// Routes registers user routes on the given chi router.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{year}/{month}", h.EchoQuery)
}

// List returns all users in insertion order.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

// Get returns a single user.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	u, ok := h.find(raw)
	if !ok {
		shown := raw
		if id, parsed := users.ParseID(raw); parsed {
			shown = strconv.Itoa(id)
		}
		writeText(w, http.StatusNotFound, fmt.Sprintf("The user %s was not found.", shown))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// EchoQuery returns the request's query string parameters as a JSON
// object. Repeated keys are returned as arrays and bracketed keys such as
// user[name] are nested.
func (h *UsersHandler) EchoQuery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nestQuery(r.URL.Query()))
}

// Create validates the submitted name and appends a new user.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, ok := h.validName(w, r)
	if !ok {
		return
	}

	u := h.store.Create(name)
	h.hub.Publish(events.New(events.UserCreated, u))
	writeJSON(w, http.StatusOK, u)
}

// Update renames an existing user. A missing user is reported before the
// body is validated.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.find(chi.URLParam(r, "id"))
	if !ok {
		writeText(w, http.StatusNotFound, "The user was not found.")
		return
	}

	name, ok := h.validName(w, r)
	if !ok {
		return
	}

	u, err := h.store.Update(u.ID, name)
	if errors.Is(err, users.ErrNotFound) {
		// Deleted between the lookup and the update.
		writeText(w, http.StatusNotFound, "The user was not found.")
		return
	}
	h.hub.Publish(events.New(events.UserUpdated, u))
	writeJSON(w, http.StatusOK, u)
}

// Delete removes a user and returns the removed record.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := users.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeText(w, http.StatusNotFound, "The user was not found.")
		return
	}

	u, err := h.store.Delete(id)
	if errors.Is(err, users.ErrNotFound) {
		writeText(w, http.StatusNotFound, "The user was not found.")
		return
	}
	h.hub.Publish(events.New(events.UserDeleted, u))
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) find(raw string) (users.User, bool) {
	id, ok := users.ParseID(raw)
	if !ok {
		return users.User{}, false
	}
	return h.store.Find(id)
}

// validName reads and validates the "name" field of the request body,
// writing the 400 response itself when it reports false.
func (h *UsersHandler) validName(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw, err := decodeField(w, r, "name")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}

	name, err := users.ValidateName(raw)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return name, true
}
