package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Every response wraps its payload as {data, message}.

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{"data": data, "message": message})
}

func respondOK(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func respondNotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, nil, message)
}

func respondInternal(c *gin.Context) {
	respond(c, http.StatusInternalServerError, nil, "server_error")
}

func respondFieldErrors(c *gin.Context, fieldErrors map[string][]string) {
	respond(c, http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors}, "validation_error")
}

// respondValidationError maps a binding failure to a 422 carrying a
// field -> messages map, so clients can attach errors to form fields.
func respondValidationError(c *gin.Context, err error) {
	fieldErrors := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			fieldErrors[field] = append(fieldErrors[field], validationMessage(fe))
		}
	} else {
		fieldErrors["body"] = []string{err.Error()}
	}
	respondFieldErrors(c, fieldErrors)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
