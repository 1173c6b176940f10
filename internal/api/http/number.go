package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// numberError reports a value that is neither a JSON number nor a numeric string.
type numberError struct{ field, raw string }

func (e *numberError) Error() string { return e.field + " must be a number" }

// rankValue accepts 500, 500.0 or "500". Front ends often post form values
// as strings.
type rankValue float64

func (v *rankValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = 0
		return nil
	}
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return &numberError{field: "rank", raw: string(b)}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*v = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return &numberError{field: "rank", raw: string(b)}
	}
	*v = rankValue(f)
	return nil
}
