package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore-storefront/internal/domains/book/model"
	service "bookstore-storefront/internal/domains/book/service"
	"bookstore-storefront/internal/domains/book/view"
	cartModel "bookstore-storefront/internal/domains/cart/model"
	cartService "bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/domains/cart/store"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/internal/shared/request"
	"bookstore-storefront/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler - HTTP Handler for listing, detail and the quantity selector
type Handler struct {
	service service.ServiceInterface
	carts   cartService.ServiceInterface
	views   *view.Registry
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface, carts cartService.ServiceInterface, views *view.Registry) *Handler {
	return &Handler{
		service: service,
		carts:   carts,
		views:   views,
	}
}

// ListBooks - GET /v1/books
// Query params: q, price, limit, featured
func (h *Handler) ListBooks(c *gin.Context) {
	q := model.ListQuery{
		Search:  c.Query("q"),
		Bracket: model.PriceBracket(c.Query("price")),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			q.Limit = l
		}
	}
	if featuredStr := c.Query("featured"); featuredStr != "" {
		if f, err := strconv.ParseBool(featuredStr); err == nil {
			q.Featured = f
		}
	}
	q = q.Normalize()

	v := h.views.Listing(middleware.GetSessionID(c))
	ticket := v.Begin(q)

	result, err := h.service.ListBooks(c.Request.Context(), q)
	committed := h.views.FinishListing(v, ticket, result, err)
	if model.HandleBookError(c, err, model.ListingLoadFailedMessage) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.NewListingResponse(result), &response.Meta{
		Total:     result.Count(),
		Limit:     q.Limit,
		Sequence:  uint64(ticket),
		Discarded: !committed,
	})
}

// GetListingView - GET /v1/books/view
// Returns whatever the newest listing load of the session left behind.
func (h *Handler) GetListingView(c *gin.Context) {
	snap := h.views.Listing(middleware.GetSessionID(c)).Snapshot()

	data := model.ListingResponse{
		Query:   snap.Query,
		State:   snap.State,
		Books:   []model.BookCard{},
		Message: snap.Message,
		Filters: model.BracketOptions,
	}
	if snap.Result != nil {
		data = model.NewListingResponse(snap.Result)
	}

	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Total:    data.Count,
		Sequence: uint64(snap.Ticket),
	})
}

// GetBookDetail - GET /v1/books/:id
func (h *Handler) GetBookDetail(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	id := c.Param("id")

	v := h.views.Detail(sessionID)
	ticket := v.Begin(id)

	book, err := h.service.GetBookDetail(c.Request.Context(), id)
	committed := h.views.FinishDetail(v, ticket, book, err)
	if model.HandleBookError(c, err, model.DetailLoadFailedMessage) {
		return
	}

	qty := h.views.SyncSelector(sessionID, *book)
	response.SuccessWithMeta(c, http.StatusOK, model.NewBookDetailResponse(*book, qty), &response.Meta{
		Sequence:  uint64(ticket),
		Discarded: !committed,
	})
}

// AdjustQuantity - POST /v1/books/:id/quantity
// Body: {"action": "increment"|"decrement"|"set", "value": n}
func (h *Handler) AdjustQuantity(c *gin.Context) {
	var req model.QuantityRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	book, err := h.service.GetBookDetail(c.Request.Context(), c.Param("id"))
	if model.HandleBookError(c, err, model.DetailLoadFailedMessage) {
		return
	}

	state, applied, err := h.views.AdjustQuantity(middleware.GetSessionID(c), *book, req)
	if model.HandleBookError(c, err, "") {
		return
	}

	response.Success(c, http.StatusOK, model.QuantityResponse{
		BookID:   book.ID,
		Applied:  applied,
		Quantity: state,
	})
}

// AddToCart - POST /v1/books/:id/add-to-cart
// Appends the selected quantity as separate line items and points the
// client at the cart page.
func (h *Handler) AddToCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	book, err := h.service.GetBookDetail(c.Request.Context(), c.Param("id"))
	if model.HandleBookError(c, err, model.DetailLoadFailedMessage) {
		return
	}

	qty := h.views.SyncSelector(sessionID, *book)
	if !qty.CanAddToCart {
		model.HandleBookError(c, model.ErrOutOfStock, "")
		return
	}

	var redirect string
	cart, err := h.carts.Mutate(c.Request.Context(), sessionID, cartModel.OpAdd, func(st *store.Store) error {
		var addErr error
		redirect, addErr = h.service.AddToCart(st, *book, qty.Quantity)
		return addErr
	})
	if err != nil {
		if errors.Is(err, cartModel.ErrCartFull) || errors.Is(err, cartModel.ErrSessionRequired) {
			cartModel.HandleCartError(c, err)
			return
		}
		model.HandleBookError(c, err, "")
		return
	}

	h.views.TakeQuantity(sessionID, *book)
	response.Success(c, http.StatusCreated, model.AddToCartResponse{
		BookID:     book.ID,
		Added:      qty.Quantity,
		TotalItems: cart.TotalItems,
		Redirect:   redirect,
	})
}
