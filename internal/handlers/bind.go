package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/types"
)

var registerOnce sync.Once

// RegisterValidators installs the custom tags used by request structs on
// gin's validator engine:
//
//	enum  the field implements types.Enum and holds a known value
//	date  the field is a YYYY-MM-DD calendar date
//
// Nullable fields are validated by their held value, so required and
// omitempty treat null like a missing field.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handlers: gin validator engine is not go-playground/validator")
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(types.Enum)
			return ok && e.Valid()
		})

		mustRegister(v, "date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(types.DateLayout, fl.Field().String())
			return err == nil
		})

		v.RegisterCustomTypeFunc(nullableValue[string], types.Nullable[string]{})
		v.RegisterCustomTypeFunc(nullableValue[uint], types.Nullable[uint]{})
		v.RegisterCustomTypeFunc(nullableValue[float64], types.Nullable[float64]{})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("handlers: register %q validator: %v", tag, err))
	}
}

func nullableValue[T any](field reflect.Value) any {
	n, ok := field.Interface().(types.Nullable[T])
	if !ok || n.Value == nil {
		return nil
	}
	return *n.Value
}

type normalizer interface {
	Normalize()
}

// bindJSON decodes the request body into req, normalizes it and runs the
// binding tags. The returned error is always an apperr validation error.
func bindJSON(ctx *gin.Context, req any) error {
	if ctx.Request.Body == nil {
		return apperr.Validation("Invalid request body")
	}

	if err := json.NewDecoder(ctx.Request.Body).Decode(req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		return validationError(err)
	}

	return nil
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return apperr.Validation("Validation failed")
	}

	fields := make([]apperr.FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return apperr.Validation("Validation failed", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Param() == "1" {
			return fe.Field() + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "date":
		return fe.Field() + " must be a valid date (YYYY-MM-DD)"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "enum":
		if e, ok := fe.Value().(types.Enum); ok {
			return fe.Field() + " must be one of: " + strings.Join(e.Values(), ", ")
		}
	}
	return fe.Field() + " is invalid"
}
