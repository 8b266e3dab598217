package cart

import (
	"net/http"

	"bookstore-storefront/internal/domains/book/catalog"
	bookModel "bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/internal/shared/request"
	"bookstore-storefront/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the session cart
type Handler struct {
	service service.ServiceInterface
	books   catalog.Client
}

// NewHandler creates handler instance
func NewHandler(service service.ServiceInterface, books catalog.Client) *Handler {
	return &Handler{service: service, books: books}
}

// ===================================
// GET /cart
// ===================================

// GetCart returns line items, per-book groups and totals.
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ===================================
// POST /cart/items
// ===================================

// AddItem appends one line item (the book card's "Add to Cart").
func (h *Handler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	book, err := h.books.GetBook(ctx, req.BookID)
	if err == nil && !book.InStock() {
		err = bookModel.ErrOutOfStock
	}
	if bookModel.HandleBookError(c, err, "") {
		return
	}

	cart, err := h.service.AddItem(ctx, middleware.GetSessionID(c), model.NewItem{
		BookID:    book.ID,
		Title:     book.Title,
		Price:     book.Price,
		Thumbnail: book.Thumbnail,
	})
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, cart)
}

// ===================================
// PUT /cart/items/:book_id
// ===================================

// UpdateQuantity sets how many repetitions of a book the cart holds.
// Unknown books are left alone.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req model.UpdateQuantityRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), c.Param("book_id"), req.Quantity)
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ===================================
// DELETE /cart/items/:book_id
// ===================================

// RemoveBook removes one repetition of a book. A miss answers 200 with
// removed=false.
func (h *Handler) RemoveBook(c *gin.Context) {
	res, err := h.service.RemoveBook(c.Request.Context(), middleware.GetSessionID(c), c.Param("book_id"))
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ===================================
// DELETE /cart/lines/:line_id
// ===================================

func (h *Handler) RemoveLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		// an id that cannot exist matches nothing
		cart, getErr := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
		if model.HandleCartError(c, getErr) {
			return
		}
		response.Success(c, http.StatusOK, model.RemoveResponse{Removed: false, Cart: *cart})
		return
	}

	res, err := h.service.RemoveLine(c.Request.Context(), middleware.GetSessionID(c), lineID)
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ===================================
// DELETE /cart
// ===================================

func (h *Handler) Clear(c *gin.Context) {
	cart, err := h.service.Clear(c.Request.Context(), middleware.GetSessionID(c))
	if model.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, cart)
}
