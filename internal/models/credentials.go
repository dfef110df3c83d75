package models

import (
	"encoding/json"
	"sort"
)

// Credentials maps usernames to plain-text passwords. Lookups are exact and
// case-sensitive.
type Credentials map[string]string

// Clone returns an independent copy; a nil receiver yields an empty map.
func (c Credentials) Clone() Credentials {
	out := make(Credentials, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c Credentials) Usernames() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DecodeCredentials parses the flat username→password JSON object. Empty input
// is an empty table.
func DecodeCredentials(data []byte) (Credentials, error) {
	creds := Credentials{}
	if len(data) == 0 {
		return creds, nil
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	if creds == nil {
		creds = Credentials{}
	}
	return creds, nil
}

// Encode serializes the table as a flat JSON object.
func (c Credentials) Encode() ([]byte, error) {
	return json.Marshal(c.Clone())
}
