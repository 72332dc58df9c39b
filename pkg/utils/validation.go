package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// UseJSONFieldNames makes validation errors report json names
// (full_name) instead of Go names (FullName).
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// ValidationDetail turns a bind error into a readable message.
func ValidationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON body"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s: must be of type %s", typeErr.Field, typeErr.Type.String())
	}
	return err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": field required"
	case "required_without":
		return fmt.Sprintf("%s: required when %s is missing", field, fe.Param())
	case "excluded_with":
		return fmt.Sprintf("%s: cannot be combined with %s", field, fe.Param())
	case "email":
		return field + ": value is not a valid email address"
	case "min":
		return fmt.Sprintf("%s: must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must have at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s: must be a date formatted as %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed on %s", field, fe.Tag())
	}
}
