package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/papernu/paper/scrape/db"
)

// Majors is the "majors" object keyed by department code. Key order is kept
// both ways since short ids and colors are handed out in that order.
type Majors []db.Department

func (m Majors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, major := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, major.Code); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, major); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Majors) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token == nil {
		*m = nil
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("majors: expected object, got %v", token)
	}

	var majors Majors
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		code := token.(string)

		var major db.Department
		if err := decoder.Decode(&major); err != nil {
			return fmt.Errorf("major %s: %w", code, err)
		}
		major.Code = code
		majors = append(majors, major)
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}

	*m = majors
	return nil
}

// encodeCompact writes v without HTML escaping or the trailing newline Encoder adds.
func encodeCompact(buf *bytes.Buffer, v any) error {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
