package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Grade is a request field that may be absent, null, an empty string, a
// number or a numeric string. Decoding never fails; malformed input sets
// Invalid so services can report a proper validation message.
type Grade struct {
	Set     bool
	Value   *float64
	Invalid bool
}

func (g *Grade) UnmarshalJSON(b []byte) error {
	g.Set = true
	g.Value = nil
	g.Invalid = false

	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			g.Invalid = true
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		g.Invalid = true
		return nil
	}

	g.Value = &v
	return nil
}

// Cleared reports whether the field was sent as null or "".
func (g Grade) Cleared() bool {
	return g.Set && !g.Invalid && g.Value == nil
}
