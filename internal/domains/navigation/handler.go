package navigation

import (
	"net/http"

	authService "bookstore-storefront/internal/domains/auth/service"
	cartModel "bookstore-storefront/internal/domains/cart/model"
	cartService "bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/internal/shared/request"
	"bookstore-storefront/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth  authService.ServiceInterface
	carts cartService.ServiceInterface
}

func NewHandler(auth authService.ServiceInterface, carts cartService.ServiceInterface) *Handler {
	return &Handler{auth: auth, carts: carts}
}

// Search - POST /search
// A blank term answers 204 and the client stays where it is.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	nav, ok := SubmitSearch(req.Q)
	if !ok {
		response.NoContent(c)
		return
	}
	response.Success(c, http.StatusOK, nav)
}

// ApplyFilters - POST /filters
func (h *Handler) ApplyFilters(c *gin.Context) {
	var req FilterRequest
	if !request.BindAndValidate(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, ApplyFilters(req.Price, req.Q))
}

// ResetFilters - POST /filters/reset
func (h *Handler) ResetFilters(c *gin.Context) {
	var req FilterRequest
	if !request.BindAndValidate(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, ResetFilters(req.Q))
}

// Shell - GET /nav
func (h *Handler) Shell(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	count, err := h.carts.ItemCount(ctx, sessionID)
	if cartModel.HandleCartError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, BuildShell(h.auth.Current(ctx, sessionID), count))
}
