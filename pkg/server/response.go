package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response is the envelope of every API answer.
type Response struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

// Meta carries the status of a response.
type Meta struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail points at one offending request field.
type ErrorDetail struct {
	Path string `json:"path"`
	Info string `json:"info"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{Code: http.StatusOK, Message: "OK"},
		Data: data,
	})
}

func fail(c *gin.Context, httpCode int, message string, details ...ErrorDetail) {
	c.AbortWithStatusJSON(httpCode, Response{
		Meta: Meta{Code: httpCode, Message: message, Details: details},
	})
}

// badRequest answers 400, expanding validator errors into per-field details.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ErrorDetail{
				Path: fieldPath(fe),
				Info: validationMessage(fe),
			})
		}
		fail(c, http.StatusBadRequest, "Validation failed", details...)
		return
	}
	fail(c, http.StatusBadRequest, err.Error())
}

// fieldPath drops the request type from the namespace: scoreRequest.items[0].peso -> items[0].peso.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "riskclass":
		return fe.Field() + " must be an ARL class I to V"
	default:
		return fe.Field() + " is invalid"
	}
}
