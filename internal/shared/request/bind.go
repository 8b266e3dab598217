package request

import (
	"errors"
	"io"
	"net/http"

	"bookstore-storefront/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BindAndValidate decodes the JSON body into req and runs its ozzo rules.
// An empty body decodes to the zero request. On failure the 400 response is
// already written and false is returned.
func BindAndValidate(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", err)
		return false
	}
	return true
}
