package receiptprefs

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DecodeJSON decodes a single JSON value from data into v. Numbers decoded
// into interface{} are kept as json.Number so integers above 2^53 survive a
// round trip through storage or cache.
func DecodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
