package organization

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CreativeUnicorns/receiptprefs"
)

// ErrRemoteValueType is returned when a remote value cannot be converted to
// the type of the local preference.
var ErrRemoteValueType = errors.New("remote preference value has an incompatible type")

// coerce converts a remote value to the canonical Go type of typ.
func coerce(value interface{}, typ string) (interface{}, error) {
	switch typ {
	case receiptprefs.IntType, receiptprefs.FloatType:
		if s, ok := value.(string); ok {
			value = json.Number(strings.TrimSpace(s))
		}
	case receiptprefs.BoolType:
		if s, ok := value.(string); ok {
			switch strings.TrimSpace(s) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrRemoteValueType, s)
		}
	case receiptprefs.StringType:
		switch v := value.(type) {
		case json.Number:
			return v.String(), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
	}

	normalized, err := receiptprefs.NormalizeValue(value, typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteValueType, err)
	}
	return normalized, nil
}

// equal compares two canonical values of the same preference type. Floats
// are compared exactly.
func equal(local, remote interface{}) bool {
	return local == remote
}
