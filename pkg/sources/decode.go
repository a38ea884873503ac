package sources

import (
	"errors"
	"io"

	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned for a body that is not JSON.
var ErrInvalidDocument = errors.New("document is not valid JSON")

// ReadDocument reads a whole JSON document. The bytes are kept as they
// arrived so mantissas reach the normalizer with their decimal digits.
func ReadDocument(r io.Reader) ([]byte, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidDocument
	}
	return doc, nil
}
