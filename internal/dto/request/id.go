package request

import "encoding/json"

// ID is a caller-supplied opaque identifier. Clients submit ids
// inconsistently as JSON strings or numbers ("42" vs 42); ID accepts both and
// carries the textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}
