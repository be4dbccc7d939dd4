package persist

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type header struct {
	Version *int `json:"version"`
}

func Encode(record any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "encode record")
	}
	return data, nil
}

// Decode checks the record's version before unmarshalling it into out.
// Unknown fields are ignored and missing fields keep their zero value.
func Decode(data []byte, version int, out any) error {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return errors.Wrapf(ErrCorrupt, "read header: %v", err)
	}
	if h.Version == nil {
		return errors.Wrap(ErrVersionMismatch, "record has no version")
	}
	if *h.Version != version {
		return errors.Wrapf(ErrVersionMismatch, "got %d, want %d", *h.Version, version)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(ErrCorrupt, "decode body: %v", err)
	}
	return nil
}
