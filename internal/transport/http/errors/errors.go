// errors стандартизирует ответы об ошибках HTTP-слоя engagement-service.
// На вход принимается ошибка сервисного слоя (сентинелы service.Err*),
// на выход:
//   - корректный HTTP-статус;
//   - короткий стабильный код и безопасное сообщение без деталей хранилища.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/forum-engagement/internal/service"
	"github.com/pribylovaa/forum-engagement/internal/watch"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrForbidden — у пользователя нет прав на операцию (админские маршруты).
	ErrForbidden = stderrors.New("forbidden")
	// ErrBadRequest — тело или параметры запроса не разобраны.
	ErrBadRequest = stderrors.New("bad request")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и унифицированный ответ.
//
// Таблица:
//   - ErrInvalidArgument, ErrBadRequest, watch.ErrInvalidQuery -> 400 invalid_argument
//   - ErrInvalidEvent -> 400 invalid_event
//   - ErrUnauthenticated -> 401
//   - ErrForbidden -> 403
//   - ErrNotFound -> 404
//   - ErrNotConfigured -> 501
//   - ErrStorageRead/ErrStorageWrite -> 503 (хранилище недоступно)
//   - ErrBatchPartial -> 500 batch_partial
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504
//   - err == nil и прочее -> 500/internal
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// Code — стабильный код ошибки (для предупреждений в успешных ответах).
func Code(err error) string {
	_, code, _ := classify(err)
	return code
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, service.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid_event", "invalid event"
	case stderrors.Is(err, service.ErrInvalidArgument),
		stderrors.Is(err, ErrBadRequest),
		stderrors.Is(err, watch.ErrInvalidQuery):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, ErrForbidden):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrNotConfigured):
		return http.StatusNotImplemented, "not_configured", "feature is not configured"
	case stderrors.Is(err, service.ErrBatchPartial):
		return http.StatusInternalServerError, "batch_partial", "notifications partially delivered"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, service.ErrStorageRead), stderrors.Is(err, service.ErrStorageWrite):
		return http.StatusServiceUnavailable, "unavailable", "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
