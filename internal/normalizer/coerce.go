package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"meeting-insights-go/internal/schema"
)

// Coerce maps a raw provider mapping onto the canonical schema. Keys resolve
// exactly, via the alias table, or by fuzzy name match; unresolved keys are
// dropped. Every value is stringified; nil/empty values become the sentinel.
// The result always carries exactly the canonical field set. After mapping,
// the derived Date (from fileName) and score fields are computed.
func Coerce(raw map[string]any, fileName string) schema.Record {
	rec := schema.NewRecord()
	for k, v := range raw {
		field, ok := schema.Resolve(k)
		if !ok {
			continue
		}
		rec[field] = stringify(v)
	}

	if rec[schema.FieldDate] == schema.NA {
		if d, ok := DateFromFileName(fileName); ok {
			rec[schema.FieldDate] = d
		}
	}
	deriveScores(rec)
	return rec
}

// stringify renders any parsed JSON value as a canonical cell value.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return schema.NA
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == "None" {
			return schema.NA
		}
		return s
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) == 0 {
			return schema.NA
		}
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := stringify(e); s != schema.NA {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return schema.NA
		}
		return strings.Join(parts, "; ")
	default:
		b, err := json.Marshal(t)
		if err != nil || len(b) == 0 {
			return schema.NA
		}
		return string(b)
	}
}

// deriveScores computes Total Score and % Score from the five sub-scores.
// Each sub-score is parsed leniently and clamped to [0,10]. All five must
// parse before anything is written back; otherwise every provider-given
// value, decorated sub-scores included, is left untouched.
func deriveScores(rec schema.Record) {
	vals := make([]int, len(schema.SubScores))
	total := 0
	for i, f := range schema.SubScores {
		n, err := parseScore(rec[f])
		if err != nil {
			return
		}
		vals[i] = n
		total += n
	}
	for i, f := range schema.SubScores {
		rec[f] = strconv.Itoa(vals[i])
	}
	rec[schema.FieldTotalScore] = strconv.Itoa(total)
	rec[schema.FieldPercentScore] = fmt.Sprintf("%.1f%%", float64(total)/50*100)
}

// parseScore accepts plain integers, decimals, and %-suffixed or /-delimited
// forms ("8", "8.5", "80%", "8/10") by stripping non-numeric decoration,
// then rounds and clamps to [0,10].
func parseScore(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == schema.NA {
		return 0, fmt.Errorf("no score value")
	}
	if i := strings.IndexByte(s, '/'); i != -1 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", s, err)
	}
	n := int(f + 0.5)
	if f < 0 {
		n = int(f - 0.5)
	}
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return n, nil
}
