package requests

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// MaxJSONBodyBytes caps request bodies. Signatures travel as data URIs.
const MaxJSONBodyBytes = 8 << 20

var ErrEmptyBody = errors.New("empty request body")

// DecodeJSON reads a JSON object body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if !carriesBody(r.Method) || r.Body == nil {
		return ErrEmptyBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return ErrEmptyBody
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// carriesBody is false for the methods whose bodies are ignored
func carriesBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
		return false
	}
	return true
}

// PathInt64 parses the named path wildcard as a positive id
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryFlag reports whether the query parameter is set to 1, true or yes
func QueryFlag(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
