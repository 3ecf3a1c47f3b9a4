package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	errs "github.com/terangamart/terangamart/errors"
	"github.com/terangamart/terangamart/server/response"
)

// decode binds the JSON body, renders binding failures as validation
// errors, and trims string fields per their conform tags.
func decode(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return formatBindingError(err)
	}
	if err := conform.Strings(obj); err != nil {
		return errs.New("invalid request body", http.StatusBadRequest)
	}
	return nil
}

func formatBindingError(err error) *errs.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, validationMessage(fe))
		}
		return errs.New(strings.Join(msgs, "; "), http.StatusBadRequest)
	}
	return errs.New("invalid request body", http.StatusBadRequest)
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// notBlank rejects content that trimming reduced to nothing.
func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.New(field+" cannot be empty", http.StatusBadRequest)
	}
	return nil
}

// serviceError renders a service failure, hiding anything that does not
// carry its own status.
func serviceError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		response.JSON(c, "", e.Status, nil, e)
		return
	}
	log.Printf("internal error: %v", err)
	response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
