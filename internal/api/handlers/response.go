package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	KindInvalidInput              = "invalid_input"
	KindInvalidServices           = "invalid_services"
	KindEmptyBooking              = "empty_booking"
	KindPastBooking               = "past_booking"
	KindNoAvailableSlot           = "no_available_slot"
	KindSlotConflict              = "slot_conflict"
	KindOverlappingWindow         = "overlapping_window"
	KindCancellationWindowExpired = "cancellation_window_expired"
	KindNotOwnerOrAdmin           = "not_owner_or_admin"
	KindNotFound                  = "not_found"
	KindServiceInUse              = "service_in_use"
	KindCategoryExists            = "category_exists"
	KindUnauthorized              = "unauthorized"
	KindRateLimited               = "rate_limited"
	KindInternal                  = "internal"

	FieldServiceIDs = "service_ids"

	msgInternalError = "внутренняя ошибка сервера"

	// maxBodyBytes предел размера тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку, вид ошибки выводится из статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondRejection(w, status, kindByStatus(status), message, "")
}

// RespondRejection отправляет ошибку с явным видом и полем
func RespondRejection(w http.ResponseWriter, status int, kind, message, field string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: message,
		Field:   field,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondRejection(w, http.StatusForbidden, KindNotOwnerOrAdmin, message, "")
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondInternalError детали ошибки клиенту не отдаются
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON разбирает тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func kindByStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidInput
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindNotOwnerOrAdmin
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindInternal
	}
}
