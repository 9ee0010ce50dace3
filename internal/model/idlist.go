package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList is an ordered sequence of ids stored as a JSON array column.
// Order is significant: a list's CardIDs is the authoritative card order.
type IDList []uuid.UUID

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IDList) Scan(src any) error {
	return scanJSON(src, (*[]uuid.UUID)(l))
}

func (IDList) GormDataType() string { return "json" }

func (IDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// IndexOf returns the first index of id, or -1.
func (l IDList) IndexOf(id uuid.UUID) int {
	for i, v := range l {
		if v == id {
			return i
		}
	}
	return -1
}

func (l IDList) Contains(id uuid.UUID) bool { return l.IndexOf(id) >= 0 }

// Without returns a copy with every occurrence of id removed.
func (l IDList) Without(id uuid.UUID) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// InsertAt returns a copy with id inserted at index, clamped to [0, len(l)].
func (l IDList) InsertAt(index int, id uuid.UUID) IDList {
	if index < 0 {
		index = 0
	}
	if index > len(l) {
		index = len(l)
	}
	out := make(IDList, 0, len(l)+1)
	out = append(out, l[:index]...)
	out = append(out, id)
	return append(out, l[index:]...)
}

// StringList is an unordered set of strings (card labels) stored as JSON.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, (*[]string)(l))
}

func (StringList) GormDataType() string { return "json" }

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func scanJSON(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
