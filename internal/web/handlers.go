package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"userCatalog/internal/randomuser"
	"userCatalog/models"
)

const (
	msgInvalidCount  = "Invalid number of users."
	msgFetchFailed   = "Could not import users from the remote service."
	msgNoUsers       = "No users in the database."
	formFieldNumUser = "num_users"
)

// UserReader is the read side of the user store.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// UserImporter pulls users from the remote API into the store.
type UserImporter interface {
	ValidateCount(n int) error
	Import(ctx context.Context, n int) (int, error)
}

// Handler serves the HTML views over an injected store and importer.
type Handler struct {
	users    UserReader
	importer UserImporter
	render   *Renderer
	maxCount int
	mode     string

	// pick returns a uniform index in [0, n).
	pick func(n int) int
}

// Option customizes a Handler.
type Option func(*Handler)

// WithPicker replaces the random index source used by /random.
func WithPicker(pick func(n int) int) Option {
	return func(h *Handler) { h.pick = pick }
}

// WithImportLimits sets the values shown on the import form.
func WithImportLimits(maxCount int, mode string) Option {
	return func(h *Handler) {
		h.maxCount = maxCount
		h.mode = mode
	}
}

func NewHandler(users UserReader, importer UserImporter, rd *Renderer, opts ...Option) *Handler {
	h := &Handler{
		users:    users,
		importer: importer,
		render:   rd,
		maxCount: 5000,
		pick:     rand.IntN,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Index renders every stored user plus the import form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	return h.renderIndex(w, r, http.StatusOK, "", "")
}

// Import handles the form post. A bad count re-renders the list with an
// inline error and leaves the store unchanged; success redirects to /.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return ErrBadRequest
	}
	raw := strings.TrimSpace(r.PostFormValue(formFieldNumUser))
	n, err := strconv.Atoi(raw)
	if err == nil {
		err = h.importer.ValidateCount(n)
	}
	if err != nil {
		return h.renderIndex(w, r, http.StatusOK, msgInvalidCount, raw)
	}

	if _, err := h.importer.Import(r.Context(), n); err != nil {
		var fe *randomuser.FetchError
		if errors.As(err, &fe) {
			return h.renderIndex(w, r, http.StatusBadGateway, msgFetchFailed, raw)
		}
		return err
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// User renders the record whose id is in the path.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return ErrUserNotFound
	}
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return h.render.Render(w, http.StatusOK, "user", userPage{User: u})
}

// Random renders one user chosen uniformly from all stored records.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) error {
	all, err := h.users.All(r.Context())
	if err != nil {
		return err
	}
	if len(all) == 0 {
		h.render.Notice(w, http.StatusOK, "No users", msgNoUsers)
		return nil
	}
	u := all[h.pick(len(all))]
	return h.render.Render(w, http.StatusOK, "user", userPage{User: &u, Random: true})
}

// NotFound answers every path no other route claims.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) error {
	return ErrNotFound
}

type healthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

// HealthCheck reports store reachability and the current row count. An
// unreachable store is a 503 notice page.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	if err := h.users.Ping(r.Context()); err != nil {
		log.Printf("health: ping store: %v", err)
		return ErrUnavailable
	}
	n, err := h.users.Count(r.Context())
	if err != nil {
		log.Printf("health: count users: %v", err)
		return ErrUnavailable
	}
	return h.respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Users: n})
}

func (h *Handler) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg, numUsers string) error {
	users, err := h.users.All(r.Context())
	if err != nil {
		return err
	}
	return h.render.Render(w, status, "index", indexPage{
		Users:    users,
		Error:    errMsg,
		NumUsers: numUsers,
		Max:      h.maxCount,
		Mode:     h.mode,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
