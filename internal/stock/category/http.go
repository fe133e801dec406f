// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for the catalog taxonomy.

# Security

Reads are public; mutations require at least the EMPLOYEE role and
deletion is reserved for administrators, mirroring the product rules.
*/
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockmanager/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockmanager/internal/platform/request"
	"github.com/taibuivan/stockmanager/internal/platform/respond"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/internal/platform/validate"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// Handler implements the HTTP layer for taxonomy management.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with the category domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleEmployee))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Delete("/{id}", handler.remove)
	})

	return router
}

// # Request Payloads

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

/*
GET /api/v1/categories.

Response:
  - 200: []Category: Paginated taxonomy page
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	categories, total, err := handler.categoryService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/categories/{id}.

Response:
  - 200: Category: Hydrated entity
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	category, err := handler.categoryService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
POST /api/v1/categories.

Request:
  - Body: createCategoryRequest

Response:
  - 201: Category: Created entity
  - 400: Validation: Bad input
  - 409: ErrConflict: Duplicate category name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
PUT /api/v1/categories/{id}.

Request:
  - Body: updateCategoryRequest (nil fields untouched)

Response:
  - 200: Category: The updated entity
  - 404: ErrNotFound: Unknown category
  - 409: ErrConflict: Duplicate category name
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 100)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Update(request.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
DELETE /api/v1/categories/{id}.

Response:
  - 204: No Content: Category removed
  - 404: ErrNotFound: Unknown category
  - 409: ErrConflict: Category still has products attached
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.categoryService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
