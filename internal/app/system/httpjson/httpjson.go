// internal/app/system/httpjson/httpjson.go
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/ripple/internal/app/system/paging"
	"go.uber.org/zap"
)

// Envelope is the response shape every endpoint uses: success carries
// data, failure carries a message. Paginated responses add total and
// the pagination block; all of its fields are mandatory when present.
type Envelope struct {
	Success    bool         `json:"success"`
	Data       interface{}  `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Total      *int64       `json:"total,omitempty"`
	Pagination *paging.Meta `json:"pagination,omitempty"`
}

// OK writes a success envelope with the given status and payload.
func OK(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Page writes a success envelope with the pagination block.
func Page(w http.ResponseWriter, data interface{}, total int64, meta paging.Meta) {
	write(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Total:      &total,
		Pagination: &meta,
	})
}

// Fail writes a failure envelope. The message is caller-facing; never
// pass raw persistence errors through it.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// Internal logs the underlying fault and writes an opaque 500. Stack
// detail stays in the logs, never the response.
func Internal(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	logger.Error(op, zap.Error(err))
	Fail(w, http.StatusInternalServerError, "something went wrong")
}

// Decode reads a JSON request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
