package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape: {ok:true,data} or {ok:false,error}.
type Envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// ResponseJSON writes an envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

// ResponseOK returns 200 with {ok:true,data}
func ResponseOK(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, Envelope{OK: true, Data: data})
}

// ResponseCreated returns 201 with {ok:true,data}
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, Envelope{OK: true, Data: data})
}

// ResponseError returns {ok:false,error:<code>} with the given HTTP status
func ResponseError(w http.ResponseWriter, code int, errCode string) {
	ResponseJSON(w, code, Envelope{OK: false, Error: errCode})
}
