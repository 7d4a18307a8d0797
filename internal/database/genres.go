package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Genres is an ordered list of genre names stored as a JSON array in a text column.
type Genres []string

func (g *Genres) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("Genres.Scan: expected []byte or string, got %T", src)
	}
	if len(b) == 0 {
		*g = Genres{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("Genres.Scan: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*g = out
	return nil
}

func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		g = Genres{}
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
