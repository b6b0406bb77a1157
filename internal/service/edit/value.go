package edit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// Readers turn a raw answer into its typed value. The raw answer is either
// what the edit form submitted (already typed by upstream validation) or what
// came back from a JSONB column, so both shapes are accepted. A reader
// returns false when the answer should be treated as absent.

func readBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func readText(raw any) (string, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case json.Number:
		s = v.String()
	case fmt.Stringer:
		s = v.String()
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func readInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	}
	s, ok := readText(raw)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// readCodes accepts a list of codes or a single code. Empty lists are absent.
func readCodes(raw any) ([]string, bool) {
	var codes []string
	switch v := raw.(type) {
	case []string:
		for _, c := range v {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, c)
			}
		}
	case []any:
		for _, item := range v {
			if c, ok := readText(item); ok {
				codes = append(codes, c)
			}
		}
	default:
		if c, ok := readText(raw); ok {
			codes = []string{c}
		}
	}
	return codes, len(codes) > 0
}

// readDateTime converts a stored instant or a submitted date entry into a
// time.Time. Date entries carry no zone and are interpreted in loc.
func readDateTime(loc *time.Location) func(any) (time.Time, bool) {
	return func(raw any) (time.Time, bool) {
		switch v := raw.(type) {
		case time.Time:
			return v, !v.IsZero()
		case *time.Time:
			if v == nil {
				return time.Time{}, false
			}
			return *v, !v.IsZero()
		case domain.DateEntry:
			return dateEntryToTime(v, loc)
		case *domain.DateEntry:
			if v == nil {
				return time.Time{}, false
			}
			return dateEntryToTime(*v, loc)
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return time.Time{}, false
			}
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t, true
			}
			if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
				return t, true
			}
			return time.Time{}, false
		case map[string]any:
			entry, ok := convert[domain.DateEntry](v)
			if !ok {
				return time.Time{}, false
			}
			return dateEntryToTime(entry, loc)
		}
		return time.Time{}, false
	}
}

func dateEntryToTime(e domain.DateEntry, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation("02/01/2006", strings.TrimSpace(e.Date), loc)
	if err != nil {
		return time.Time{}, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(e.Time.Hour))
	if err != nil {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(e.Time.Minute))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}

// convert coerces raw into T, going through JSON when raw is a decoded
// document (map[string]any / []any) rather than a T already.
func convert[T any](raw any) (T, bool) {
	if v, ok := raw.(T); ok {
		return v, true
	}
	var out T
	b, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false
	}
	return out, true
}
