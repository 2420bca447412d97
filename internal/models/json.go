package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON raw JSON column stored as text, usable with sqlite, mysql and postgres
type JSON json.RawMessage

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("failed to scan JSON value: %v", value)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return fmt.Errorf("models.JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(j).MarshalJSON()
}

// MustJSON marshals v, returning null JSON on failure
func MustJSON(v interface{}) JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return JSON("null")
	}
	return JSON(data)
}
