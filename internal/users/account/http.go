// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for account directory endpoints.

# Security

The self-service endpoint requires an authenticated identity; the directory
listing is restricted to administrators via RequireRole.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockmanager/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockmanager/internal/platform/request"
	"github.com/taibuivan/stockmanager/internal/platform/respond"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// Handler implements the HTTP layer for the account directory.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET /me    : The authenticated user's own profile.
//   - GET /users : Administrative directory listing with optional role filter.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())
		r.Get("/me", handler.getMe)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/users", handler.listUsers)
	})

	return router
}

/*
GET /api/v1/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: auth.User: The caller's account record
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), identity.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users?role=ADMIN&page=1&limit=20.

Description: Lists registered accounts for administrators, optionally
filtered to a single role (case-insensitive).

Response:
  - 200: []auth.User: Paginated account page
  - 400: Validation: Unknown role filter
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	roleFilter := request.URL.Query().Get("role")

	users, total, err := handler.accountService.ListUsers(request.Context(), roleFilter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}
