package web

import (
	"net/http"
	"strconv"
)

// QueryIntDefault reads an integer query parameter. Missing, non-numeric
// or non-positive values fall back to the default instead of failing:
// listing parameters are normalized, never rejected.
func QueryIntDefault(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def
	}
	return value
}

// QueryString reads a string query parameter as-is; interpretation of
// blank or malformed values is left to the filter layer.
func QueryString(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
