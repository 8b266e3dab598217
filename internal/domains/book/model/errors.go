package model

import (
	"errors"
	"net/http"

	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrBookNotFound       = errors.New("book not found")
	ErrInvalidBookID      = errors.New("invalid book id")
	ErrOutOfStock         = errors.New("book is out of stock")
	ErrInvalidQuantity    = errors.New("invalid quantity action")
)

type bookError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

var bookErrorMap = map[error]bookError{
	ErrCatalogUnavailable: {
		Status:  http.StatusBadGateway,
		Code:    "CATALOG_UNAVAILABLE",
		Message: ListingLoadFailedMessage,
	},
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "The book you are looking for does not exist.",
		Details: gin.H{"back": BooksPath, "back_label": "Back to Books"},
	},
	ErrInvalidBookID: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_BOOK_ID",
		Message: "Book id is required",
	},
	ErrOutOfStock: {
		Status:  http.StatusConflict,
		Code:    "OUT_OF_STOCK",
		Message: "This book is out of stock",
	},
	ErrInvalidQuantity: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_QUANTITY",
		Message: "Quantity action must be increment, decrement or set",
	},
}

// HandleBookError writes the error response for err and reports whether
// there was an error at all. fallback overrides the message of a catalog
// failure so listing and detail pages keep their own wording.
func HandleBookError(c *gin.Context, err error, fallback string) bool {
	if err == nil {
		return false
	}

	for target, cfg := range bookErrorMap {
		if !errors.Is(err, target) {
			continue
		}
		msg := cfg.Message
		if target == ErrCatalogUnavailable && fallback != "" {
			msg = fallback
		}
		if cfg.Details != nil {
			response.ErrorWithDetails(c, cfg.Status, cfg.Code, msg, cfg.Details)
		} else {
			response.ErrorResponse(c, cfg.Status, cfg.Code, msg)
		}
		return true
	}

	logger.Error("unhandled book error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
