package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/encoding/json"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

const (
	tagPassword      = "password"
	tagFullName      = "fullname"
	tagMaxYear       = "maxyear"
	tagReadingStatus = "readingstatus"
)

var fullNameRE = regexp.MustCompile(`^[a-zA-Z\s]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(tagPassword, passwordValidator)
	_ = v.RegisterValidation(tagFullName, fullNameValidator)
	_ = v.RegisterValidation(tagMaxYear, maxYearValidator)
	_ = v.RegisterValidation(tagReadingStatus, readingStatusValidator)
	return v
}

// passwordValidator requires at least one upper case letter, one lower case
// letter and one digit.
func passwordValidator(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func fullNameValidator(fl validator.FieldLevel) bool {
	return fullNameRE.MatchString(fl.Field().String())
}

// maxYearValidator allows publication years up to the next calendar year.
func maxYearValidator(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year()+1)
}

func readingStatusValidator(fl validator.FieldLevel) bool {
	return slices.Contains(models.ReadingStatuses, fl.Field().String())
}

// fieldMessages overrides the generated message for a field and tag pair.
var fieldMessages = map[string]string{
	"email.email":                 "Please provide a valid email address",
	"email.max":                   "Email must not exceed 255 characters",
	"password.min":                "Password must be at least 8 characters long",
	"password.password":           "Password must contain at least one uppercase letter, one lowercase letter and one number",
	"password.required":           "Password is required",
	"fullName.min":                "Full name must be between 2 and 50 characters",
	"fullName.max":                "Full name must be between 2 and 50 characters",
	"fullName.fullname":           "Full name must contain only letters and spaces",
	"title.required":              "Title is required",
	"title.max":                   "Title must be between 1 and 255 characters",
	"author.required":             "Author is required",
	"author.max":                  "Author must be between 1 and 255 characters",
	"genre.max":                   "Genre must not exceed 100 characters",
	"readingStatus.required":      "Reading status is required",
	"readingStatus.readingstatus": "Reading status must be: " + strings.Join(models.ReadingStatuses, ", "),
	"rating.min":                  "Rating must be between 1 and 5",
	"rating.max":                  "Rating must be between 1 and 5",
	"notes.max":                   "Notes must not exceed 2000 characters",
	"publicationYear.min":         "Publication year must be between 1000 and next year",
	"publicationYear.maxyear":     "Publication year must be between 1000 and next year",
}

func formatValidationError(err validator.FieldError) string {
	if msg, ok := fieldMessages[err.Field()+"."+err.Tag()]; ok {
		return msg
	}

	field := err.Field()
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q is not a valid email", field)
	case "min":
		return fmt.Sprintf("%q must be at least %s", field, err.Param())
	case "max":
		return fmt.Sprintf("%q must be at most %s", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of: %s", field, err.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// validationDetails converts validator output into envelope details.
func validationDetails(err error) []responses.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []responses.FieldError{{Field: "body", Message: err.Error()}}
	}

	details := make([]responses.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, responses.FieldError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return details
}

// decodeBody decodes the JSON request body into dst. On failure it writes a
// VALIDATION_ERROR response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "Request body must be valid JSON"
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			msg = "Request body is required"
		case errors.As(err, &typeErr):
			msg = fmt.Sprintf("%q should be of type %s", strings.Trim(typeErr.Field, "."), typeErr.Type)
		}
		responses.Error(w, http.StatusBadRequest, responses.CodeValidation, "Invalid input data",
			responses.FieldError{Field: "body", Message: msg})
		return false
	}
	return true
}

// validateBody runs struct validation on req. On failure it writes a
// VALIDATION_ERROR response and returns false.
func validateBody(w http.ResponseWriter, req any) bool {
	if err := validate.Struct(req); err != nil {
		responses.Error(w, http.StatusBadRequest, responses.CodeValidation, "Invalid input data", validationDetails(err)...)
		return false
	}
	return true
}
