// ABOUTME: Request decoding for bodies, path parameters, and query strings.
// ABOUTME: Malformed input becomes a models.ValidationError located like the field it came from.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/harperreed/smartfit/internal/models"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a single JSON object into dst and validates it.
// null, arrays, scalars, and anything after the object are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return decodeError(err)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(raw, " \t\r\n"), []byte("{")) {
		return models.NewValidationError([]string{"body"}, "Input should be a valid object", "json_invalid")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.NewValidationError([]string{"body"}, "JSON decode error", "json_invalid")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err)
	}
	return models.Validate(dst)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return models.NewValidationError([]string{"body"}, "Field required", "missing")
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		kind := jsonKind(typeErr.Type)
		return models.NewValidationError(loc, "Input should be a valid "+kind, kind+"_type")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return models.NewValidationError([]string{"body"}, "JSON decode error", "json_invalid")
	case errors.As(err, &maxErr):
		return models.NewValidationError([]string{"body"}, "Request body too large", "value_error")
	default:
		return models.NewValidationError([]string{"body"}, err.Error(), "value_error")
	}
}

// jsonKind names a Go type the way a JSON client thinks of it.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

// pathInt parses an integer path parameter. Any integer is accepted; ids
// that cannot exist, like 0, fall through to a 404 from the store.
func pathInt(name, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, intParsingError([]string{"path", name})
	}
	return n, nil
}

// queryInt parses an integer query parameter. Absent values yield def.
func queryInt(r *http.Request, name string, def int64, required bool) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, models.NewValidationError([]string{"query", name}, "Field required", "missing")
		}
		return def, nil
	}
	return parseInt([]string{"query", name}, raw)
}

func parseInt(loc []string, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, intParsingError(loc)
	}
	if n < 1 {
		return 0, models.NewValidationError(loc, "Input should be greater than 0", "greater_than")
	}
	return n, nil
}

func intParsingError(loc []string) error {
	return models.NewValidationError(loc, "Input should be a valid integer, unable to parse string as an integer", "int_parsing")
}
