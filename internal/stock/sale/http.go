// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for the point-of-sale domain.

# Security

All sale endpoints require at least the EMPLOYEE role: anonymous callers
and plain users can neither record nor inspect sales.
*/
package sale

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

// Handler implements the HTTP layer for sale recording.
type Handler struct {
	saleService *Service
}

// NewHandler constructs a new sale [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{saleService: service}
}

// Routes returns a [chi.Router] configured with the sale domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleEmployee))

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)

	return router
}

// # Request Payloads

type saleLineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type createSaleRequest struct {
	Total   float64           `json:"total"`
	Details []saleLineRequest `json:"details"`
}

/*
POST /api/v1/sales.

Description: Records a sale for the authenticated operator. Amounts are
persisted exactly as supplied in the request body.

Request:
  - Body: createSaleRequest

Response:
  - 201: Sale: The recorded sale with detail lines
  - 400: Validation: Missing lines, bad quantities or amounts
  - 404: ErrNotFound: Unknown product
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createSaleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldDetails, len(input.Details) == 0, "This field is required").
		NonNegative(FieldTotal, input.Total)
	for _, line := range input.Details {
		validator.Required(FieldProductID, line.ProductID).
			UUID(FieldProductID, line.ProductID).
			Custom(FieldQuantity, line.Quantity < 1, "Must be at least 1").
			NonNegative(FieldUnitPrice, line.UnitPrice).
			NonNegative(FieldSubtotal, line.Subtotal)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lines := make([]LineInput, 0, len(input.Details))
	for _, line := range input.Details {
		lines = append(lines, LineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	sale, err := handler.saleService.Create(request.Context(), CreateInput{
		Username: identity.Username,
		Total:    input.Total,
		Lines:    lines,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sale)
}

/*
GET /api/v1/sales/{id}.

Response:
  - 200: Sale: Hydrated sale with detail lines
  - 404: ErrNotFound: Unknown sale
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	sale, err := handler.saleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sale)
}

/*
GET /api/v1/sales.

Response:
  - 200: []Sale: Paginated sale headers, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sales, total, err := handler.saleService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sales, pagination.NewMeta(params.Page, params.Limit, total))
}
