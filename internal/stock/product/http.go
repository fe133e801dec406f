// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for the product catalog.

# Security

Reads are available to any authenticated or anonymous caller; mutations
require at least the EMPLOYEE role, and deletion is reserved for
administrators.
*/
package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockmanager/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockmanager/internal/platform/request"
	"github.com/taibuivan/stockmanager/internal/platform/respond"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/internal/platform/validate"
	"github.com/taibuivan/stockmanager/pkg/pagination"
	"github.com/taibuivan/stockmanager/pkg/pointer"
)

// Handler implements the HTTP layer for catalog management.
type Handler struct {
	productService *Service
}

// NewHandler constructs a new product [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{productService: service}
}

// Routes returns a [chi.Router] configured with the product domain's endpoints.
//
// # Endpoints
//   - GET    /           : Catalog page.
//   - GET    /search     : Case-insensitive name search.
//   - GET    /low-stock  : Replenishment report.
//   - GET    /{id}       : Single product.
//   - POST   /           : Create (EMPLOYEE).
//   - PUT    /{id}       : Update (EMPLOYEE).
//   - DELETE /{id}       : Delete (ADMIN).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Catalog reads
	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/low-stock", handler.lowStock)
	router.Get("/{id}", handler.get)

	// Catalog mutations
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

type createProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    string  `json:"category_id"`
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    *string  `json:"category_id"`
}

/*
GET /api/v1/products.

Description: Returns a page of the catalog ordered alphabetically.

Response:
  - 200: []Product: Paginated catalog page
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.productService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/products/search?q=fragment.

Description: Case-insensitive substring search over product names.

Response:
  - 200: []Product: Paginated matches
  - 400: Validation: Missing query fragment
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	fragment := request.URL.Query().Get(FieldQuery)

	validator := &validate.Validator{}
	validator.Required(FieldQuery, fragment)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	products, total, err := handler.productService.Search(request.Context(), fragment, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/products/low-stock?threshold=5.

Description: Lists products whose stock is strictly below the threshold.

Response:
  - 200: []Product: Products in need of replenishment
*/
func (handler *Handler) lowStock(writer http.ResponseWriter, request *http.Request) {
	threshold := 0
	if raw := request.URL.Query().Get(FieldThreshold); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			threshold = parsed
		}
	}

	products, err := handler.productService.LowStock(request.Context(), threshold)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
GET /api/v1/products/{id}.

Response:
  - 200: Product: Hydrated catalog entity
  - 404: ErrNotFound: Unknown product
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	product, err := handler.productService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
POST /api/v1/products.

Description: Adds a new item to the catalog.

Request:
  - Body: createProductRequest

Response:
  - 201: Product: Created entity
  - 400: Validation: Bad input
  - 404: ErrNotFound: Unknown category
  - 409: ErrConflict: Duplicate product name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		NonNegative(FieldPrice, input.Price).
		NonNegative(FieldStockQuantity, float64(input.StockQuantity)).
		Required(FieldCategoryID, input.CategoryID).
		UUID(FieldCategoryID, input.CategoryID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.Create(request.Context(), CreateInput{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
PUT /api/v1/products/{id}.

Description: Applies a partial update to an existing product.

Request:
  - Body: updateProductRequest (nil fields untouched)

Response:
  - 200: Product: The updated entity
  - 400: Validation: Bad input
  - 404: ErrNotFound: Unknown product or category
  - 409: ErrConflict: Duplicate product name
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input updateProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.Price != nil {
		validator.NonNegative(FieldPrice, *input.Price)
	}
	if input.StockQuantity != nil {
		validator.NonNegative(FieldStockQuantity, float64(*input.StockQuantity))
	}
	if input.CategoryID != nil {
		validator.UUID(FieldCategoryID, pointer.Val(input.CategoryID))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.Update(request.Context(), id, UpdateInput{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
DELETE /api/v1/products/{id}.

Response:
  - 204: No Content: Product removed
  - 404: ErrNotFound: Unknown product
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.productService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
