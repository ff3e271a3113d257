// internal/pkg/httpx/response.go
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse 是所有接口统一的错误响应体
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// WriteJSON 以给定状态码写出 JSON 响应
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError 写出错误响应，error 字段为状态码对应的标准描述
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    err.Error(),
		Error:      http.StatusText(status),
	})
}
