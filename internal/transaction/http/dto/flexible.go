package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexibleID accepts identifiers sent either as JSON strings or JSON numbers, the way the
// upstream systems submit product and customer ids.
type FlexibleID string

// UnmarshalJSON decodes a string, an integer or a null into the identifier.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("must be a string or a number: %w", err)
	}
	*f = FlexibleID(n.String())
	return nil
}

// String returns the identifier.
func (f FlexibleID) String() string {
	return string(f)
}
