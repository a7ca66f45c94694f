package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"seoinspector/internal/log"
)

type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	res := Response{
		Status:     http.StatusText(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}

	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		log.Logger.Error("failed to encode JSON response", zap.Error(err))
		return
	}
}

func Success(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, data, message)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, nil, message)
}

// Markdown writes a raw Markdown body; errors still go through Error.
func Markdown(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(body)); err != nil {
		log.Logger.Error("failed to write markdown response", zap.Error(err))
	}
}
