package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/gossipd/internal/ai"
	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidatedKey is the Locals key holding the validated request body
const ValidatedKey = "validated"

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that knows the category and theme tags
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return models.Theme(fl.Field().String()).Valid()
	})
	return &Validator{validate: v}
}

// Validate validates s against its struct tags
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateBody parses the body into a fresh T, validates it and stores the
// *T under ValidatedKey.
func ValidateBody[T any]() fiber.Handler {
	v := NewValidator()

	return func(c *fiber.Ctx) error {
		body := new(T)
		if err := c.BodyParser(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
				"msg":   err.Error(),
			})
		}

		if err := v.Validate(body); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			fields := make(map[string]string)
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": fields,
			})
		}

		c.Locals(ValidatedKey, body)

		return c.Next()
	}
}

// Validated returns the body stored by ValidateBody
func Validated[T any](c *fiber.Ctx) *T {
	body, _ := c.Locals(ValidatedKey).(*T)
	return body
}

// StatusFor maps an error to its HTTP status code
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	var aiErr *ai.Error
	if errors.As(err, &aiErr) {
		switch aiErr.Kind {
		case ai.KindMissingKey:
			return fiber.StatusServiceUnavailable
		case ai.KindInvalidKey:
			return fiber.StatusUnauthorized
		case ai.KindQuota:
			return fiber.StatusTooManyRequests
		case ai.KindNetwork:
			return fiber.StatusBadGateway
		}
	}

	return fiber.StatusInternalServerError
}

// ErrorHandler is a fiber error handler that writes errors as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	body := fiber.Map{"error": http.StatusText(code)}

	var fe *fiber.Error
	var aiErr *ai.Error
	switch {
	case errors.As(err, &aiErr):
		body["error"] = aiErr.Message
		body["code"] = string(aiErr.Kind)
	case errors.As(err, &fe):
		body["error"] = fe.Message
	}

	return c.Status(code).JSON(body)
}
