package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Khusus error validasi (validator.v10) → 400 + map field → pesan
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Namespace()] = validationMessage(fieldErr)
	}

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success:   false,
		Message:   firstMessage(ve),
		ErrorCode: "VALIDATION_ERROR",
		Errors:    errorsMap,
	})
}

func firstMessage(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "Validasi gagal"
	}
	return validationMessage(ve[0])
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " wajib diisi"
	case "uuid", "uuid4":
		return fe.Field() + " harus berupa UUID"
	case "email":
		return "Format email tidak valid"
	case "min":
		return fe.Field() + " minimal " + fe.Param()
	case "max":
		return fe.Field() + " maksimal " + fe.Param()
	default:
		return fe.Field() + " tidak valid"
	}
}

// FromFiberError mengubah *fiber.Error (mis. dari middleware/helper) menjadi
// response JSON konsisten. Selain itu → 500 tanpa membocorkan detail.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
