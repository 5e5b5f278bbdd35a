package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// maxBodyBytes caps request bodies read by the JSON and form decoders.
const maxBodyBytes = 100 << 10

// errInvalidBody is returned by decodeField when the body cannot be parsed.
var errInvalidBody = errors.New("invalid request body")

// writeJSON serialises v as JSON and writes it to the response with the
// given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard JSON error response of the form
// {"detail": "message"}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeText writes a plain text response.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// decodeField returns the raw value of a single field from a JSON or
// URL-encoded form body. A missing field, an empty body, or a body of any
// other media type yields nil. A JSON body must hold exactly one value.
func decodeField(w http.ResponseWriter, r *http.Request, field string) (any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
		if _, ok := r.PostForm[field]; !ok {
			return nil, nil
		}
		return r.PostForm.Get(field), nil

	case "application/json":
		dec := json.NewDecoder(r.Body)
		var body map[string]any
		if err := dec.Decode(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, errInvalidBody
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errInvalidBody
		}
		return body[field], nil

	default:
		return nil, nil
	}
}
