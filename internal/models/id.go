package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID идентификатор, который сервер присылает числом или строкой.
// Значение хранится как текст и не интерпретируется клиентом.
type ID string

func NewID(id int64) ID {
	return ID(strconv.FormatInt(id, 10))
}

// Int64 разбирает идентификатор как целое число
func (id ID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)

	return n, err == nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == "" || id == "0"
}

// MarshalJSON отдает целые идентификаторы числом, остальные строкой
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int64(); ok && NewID(n) == id {
		return strconv.AppendInt(nil, n, 10), nil
	}

	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("идентификатор должен быть числом или строкой: %w", err)
		}
		*id = ID(n.String())
	}

	return nil
}
