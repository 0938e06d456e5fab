package models

import (
	"bytes"
	"encoding/json"
)

// RemoteID is an identifier issued by the storefront API. The API is not
// consistent about sending ids as numbers or strings, so both are accepted.
type RemoteID string

func (id *RemoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RemoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RemoteID(n.String())
	return nil
}

func (id RemoteID) String() string {
	return string(id)
}
