package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/go-playground/validator/v10"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type APIResponse struct {
	Status         string         `json:"status"`
	Message        string         `json:"message,omitempty"`
	NumOfCartItems *int           `json:"num_of_cart_items,omitempty"`
	Data           any            `json:"data,omitempty"`
	Error          *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	WriteJson(w, statusCode, APIResponse{
		Status: StatusSuccess,
		Data:   data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, statusCode int, message string, data any) {
	WriteJson(w, statusCode, APIResponse{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// Cart responses carry the line count next to the cart itself.
func CartSuccess(w http.ResponseWriter, statusCode int, message string, numOfItems int, data any) {
	WriteJson(w, statusCode, APIResponse{
		Status:         StatusSuccess,
		Message:        message,
		NumOfCartItems: &numOfItems,
		Data:           data,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// 4xx responses are "fail", 5xx are "error".
func statusFor(code int) string {
	if code >= http.StatusInternalServerError {
		return StatusError
	}

	return StatusFail
}

func Error(w http.ResponseWriter, err error) {
	var statusCode int

	resp := APIResponse{}

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		resp.Message = appErr.Message
		resp.Error = &ErrorResponse{Code: appErr.Code}

		if appErr.Detail != "" {
			resp.Error.Details = []string{appErr.Detail}
		}
	} else {
		statusCode = http.StatusInternalServerError
		resp.Message = "An unexpected error occurred"
		resp.Error = &ErrorResponse{Code: errors.ErrCodeInternal}
	}

	resp.Status = statusFor(statusCode)

	WriteJson(w, statusCode, resp)
}

// package sends the list of errors
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	var errMsgs []string

	for _, err := range errs {
		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
		case "lt":
			message = fmt.Sprintf("Field %s must be less than %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)
	}

	WriteJson(w, http.StatusBadRequest, APIResponse{
		Status:  StatusFail,
		Message: "Validation failed",
		Error: &ErrorResponse{
			Code:    errors.ErrCodeValidation,
			Details: errMsgs,
		},
	})
}
