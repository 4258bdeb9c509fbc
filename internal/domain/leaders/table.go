package leaders

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/valyala/bytebufferpool"
)

// CategoryTable maps category names to leader lines, best first.
// Key insertion order is preserved; it drives tab order.
type CategoryTable struct {
	order []string
	lines map[string][]string
}

// NewCategoryTable returns an empty table.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{lines: make(map[string][]string)}
}

// Add appends lines to a category, registering it on first use.
func (t *CategoryTable) Add(category string, lines ...string) {
	if t.lines == nil {
		t.lines = make(map[string][]string)
	}
	existing, ok := t.lines[category]
	if !ok {
		t.order = append(t.order, category)
		existing = make([]string, 0, len(lines))
	}
	t.lines[category] = append(existing, lines...)
}

// Set replaces a category's lines. A new category is appended; an existing
// one keeps its position.
func (t *CategoryTable) Set(category string, lines []string) {
	if t.lines == nil {
		t.lines = make(map[string][]string)
	}
	if _, ok := t.lines[category]; !ok {
		t.order = append(t.order, category)
	}
	t.lines[category] = lines
}

// Categories returns category names in insertion order.
func (t *CategoryTable) Categories() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Lines returns the leader lines for a category.
func (t *CategoryTable) Lines(category string) []string {
	if t == nil {
		return nil
	}
	return t.lines[category]
}

// Has reports whether the category exists.
func (t *CategoryTable) Has(category string) bool {
	if t == nil {
		return false
	}
	_, ok := t.lines[category]
	return ok
}

// Len returns the number of categories.
func (t *CategoryTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// LineCount returns the total number of leader lines across categories.
func (t *CategoryTable) LineCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, lines := range t.lines {
		n += len(lines)
	}
	return n
}

// IsEmpty reports whether the table holds no leader lines at all.
func (t *CategoryTable) IsEmpty() bool {
	return t.LineCount() == 0
}

// MarshalJSON writes categories in insertion order.
func (t *CategoryTable) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if t == nil {
		_, _ = buf.WriteString("{}")
		return append([]byte(nil), buf.B...), nil
	}

	_ = buf.WriteByte('{')
	for i, category := range t.order {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		if err := writeJSONString(buf, category); err != nil {
			return nil, err
		}
		_ = buf.WriteByte(':')
		_ = buf.WriteByte('[')
		for j, line := range t.lines[category] {
			if j > 0 {
				_ = buf.WriteByte(',')
			}
			if err := writeJSONString(buf, line); err != nil {
				return nil, err
			}
		}
		_ = buf.WriteByte(']')
	}
	_ = buf.WriteByte('}')
	return append([]byte(nil), buf.B...), nil
}

// UnmarshalJSON reads a JSON object of string arrays keeping key order.
// null decodes to an empty table.
func (t *CategoryTable) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("category table: invalid json")
	}
	parsed := gjson.ParseBytes(data)
	fresh := NewCategoryTable()
	if parsed.Type == gjson.Null {
		*t = *fresh
		return nil
	}
	if !parsed.IsObject() {
		return errors.Newf("category table: expected object, got %s", parsed.Type)
	}

	var decodeErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			decodeErr = errors.Newf("category table: %q is not an array", key.String())
			return false
		}
		lines := make([]string, 0, len(value.Array()))
		value.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				decodeErr = errors.Newf("category table: %q holds a non-string entry", key.String())
				return false
			}
			lines = append(lines, item.String())
			return true
		})
		if decodeErr != nil {
			return false
		}
		fresh.Set(key.String(), lines)
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*t = *fresh
	return nil
}

func writeJSONString(buf *bytebufferpool.ByteBuffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode json string")
	}
	_, _ = buf.Write(encoded)
	return nil
}
