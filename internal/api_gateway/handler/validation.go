package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/backoffice-ledger/internal/api_gateway/middleware"
	"github.com/backoffice-ledger/internal/domain/shared"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by the request DTOs
// to gin's validator engine. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("mmddyyyy", validateDate)
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(shared.DateLayout, s)
	return err == nil
}

func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// bindError answers a failed ShouldBind call with per-field details when the
// validator rejected the input, or a plain 400 when the body did not parse.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondValidationError(c, "Invalid request body: "+err.Error())
		return
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	RespondValidationError(c, "Request validation failed", details...)
}

// fieldPath keeps the client-facing part of the namespace. Struct and
// embedded type names are dropped, so JournalRequest.detail[0].account
// becomes detail[0].account.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "mmddyyyy":
		return "must be a date in MM/DD/YYYY format"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

func correlationID(c *gin.Context) string {
	return middleware.GetCorrelationID(c)
}
