package util

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/response"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{Message: message, Errors: errors}
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	if params.Code == 0 {
		params.Code = fiber.StatusOK
	}
	return c.Status(params.Code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes the standard error envelope; developer details
// are only included outside production.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	resp := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}
	if params.Details != nil {
		resp.Details = params.Details
	}
	if config.LoadAppConfig().Env != "production" {
		if len(errs) > 0 && errs[0] != nil {
			resp.DevMessage = errs[0].Error()
			resp.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			resp.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			resp.Trace = params.Trace
		}
	}

	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(resp)
}
