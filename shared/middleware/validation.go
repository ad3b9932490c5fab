package middleware

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	phonePattern = regexp.MustCompile(`^\d{3}-\d{4}-\d{4}$`)
	validate     = newValidator()
)

// fieldMessages overrides the generic per-tag message for specific form fields.
var fieldMessages = map[string]string{
	"name.min":                   "Name must be at least 2 characters",
	"email.email":                "Enter a valid email address",
	"phoneNumber.phone":          "Use the 000-0000-0000 format",
	"memberId.required":          "Select a member",
	"memberId.number":            "Select a member",
	"memberId.dmin":              "Select a member",
	"initialBalance.required":    "Enter an initial balance",
	"initialBalance.dmin":        "Initial balance must be at least 1,000",
	"fromAccountNumber.required": "Select the account to withdraw from",
	"toAccountNumber.required":   "Select the account to deposit into",
	"toAccountNumber.nefield":    "Choose a different account to deposit into",
	"amount.required":            "Enter an amount",
	"amount.dmin":                "Transfer amount must be at least 1",
	"description.max":            "Description must be at most 255 characters",
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// FieldErrors maps a form field name to the message rendered next to it.
type FieldErrors map[string]string

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("dmin", decimalMin); err != nil {
		panic(err)
	}
	return v
}

// decimalMin checks a numeric string field against a decimal lower bound,
// e.g. `validate:"dmin=1000"`.
func decimalMin(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	value, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return value.GreaterThanOrEqual(bound)
}

func ValidateRequest(obj any) []ValidationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: "Invalid value", Type: "invalid"}}
	}

	validationErrors := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}
	return validationErrors
}

// ValidateForm runs the declarative checks on a bound form and returns the
// first message per field, or nil when the form may be submitted.
func ValidateForm(obj any) FieldErrors {
	validationErrors := ValidateRequest(obj)
	if validationErrors == nil {
		return nil
	}
	out := make(FieldErrors, len(validationErrors))
	for _, ve := range validationErrors {
		if _, seen := out[ve.Field]; !seen {
			out[ve.Field] = ve.Message
		}
	}
	return out
}

func getErrorMsg(err validator.FieldError) string {
	if msg, ok := fieldMessages[err.Field()+"."+err.Tag()]; ok {
		return msg
	}
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Must be at least " + err.Param() + " characters"
	case "max":
		return "Must be at most " + err.Param() + " characters"
	case "gt":
		return "Value must be greater than " + err.Param()
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	case "nefield":
		return "Must differ from " + err.Param()
	case "phone":
		return "Invalid phone number"
	case "number":
		return "Must be a whole number"
	case "dmin":
		return "Must be at least " + err.Param()
	default:
		return "Invalid value"
	}
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
	})
}
