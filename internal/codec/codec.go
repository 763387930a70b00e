// Package codec converts records to and from their stored JSON form.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MikhailRaia/shortlink/internal/model"
	"github.com/MikhailRaia/shortlink/internal/pool"
)

// ErrCorruptRecord marks stored bytes that do not decode to a complete record.
var ErrCorruptRecord = errors.New("corrupt record")

var buffers = pool.New(16, func() *bytes.Buffer {
	return new(bytes.Buffer)
})

// storedRecord uses pointers so that absent fields can be told apart from
// empty ones.
type storedRecord struct {
	OwnerSecret *string `json:"owner_secret"`
	Target      *string `json:"target"`
}

// Encode renders r as a JSON object with owner_secret and target fields.
func Encode(r model.Record) ([]byte, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return append([]byte(nil), out...), nil
}

// Decode parses a stored record. Any failure wraps ErrCorruptRecord.
func Decode(data []byte) (model.Record, error) {
	var stored storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	switch {
	case stored.OwnerSecret == nil:
		return model.Record{}, fmt.Errorf("%w: owner_secret is missing", ErrCorruptRecord)
	case stored.Target == nil:
		return model.Record{}, fmt.Errorf("%w: target is missing", ErrCorruptRecord)
	case *stored.Target == "":
		return model.Record{}, fmt.Errorf("%w: target is empty", ErrCorruptRecord)
	}

	return model.Record{
		OwnerSecret: *stored.OwnerSecret,
		Target:      *stored.Target,
	}, nil
}
