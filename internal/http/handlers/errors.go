package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"busdepot/internal/domain"
	"busdepot/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var fieldNamesOnce sync.Once

// UseFormFieldNames makes validation errors report the posted field name
// ("noOfSeats") instead of the Go struct field.
func UseFormFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.Split(f.Tag.Get("form"), ",")[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// bindingError turns a gin binding failure into a ValidationError naming the
// first offending field.
func bindingError(err error) domain.ValidationError {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.ValidationError{Field: fe.Field(), Msg: describeRule(fe), Err: err}
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return domain.ValidationError{Msg: fmt.Sprintf("%q is not a whole number", numErr.Num), Err: err}
	}
	return domain.ValidationError{Msg: "invalid form data", Err: err}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

// RespondError sends standard JSON error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "page not found")
}
