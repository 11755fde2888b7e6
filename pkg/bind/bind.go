// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// JSON decodes r.Body as a single JSON document into dest and runs
// validation. The body must be exactly one document; trailing content is
// rejected so a smuggled second payload cannot ride along.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is empty, malformed, or too large;
// the error text is safe to echo to the client.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		return nil, decodeError(err)
	}
	if dec.More() {
		return nil, errors.New("request body must contain a single JSON document")
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// decodeError turns the decoder's error into a client-facing message.
func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Errorf("the %s field has the wrong type", typeErr.Field)
		}
		return fmt.Errorf("wrong JSON type, expected %s", typeErr.Type)
	default:
		return fmt.Errorf("invalid JSON: %v", err)
	}
}
