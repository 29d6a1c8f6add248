package nocodb

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Query holds the record-listing parameters of the v2 API.
type Query struct {
	// Fields is a comma-separated list of columns to return.
	Fields string
	// Sort is a comma-separated list of columns, "-" prefix for descending.
	Sort string
	// Where is a filter expression like "(field,eq,value)~and(other,gt,5)".
	Where string
	// Offset and Limit page the result; zero values are omitted.
	Offset int
	Limit  int
	// ViewID restricts the query to a saved view.
	ViewID string
}

// whereField matches the field position of a "(field,op,value)" group.
var whereField = regexp.MustCompile(`\(([a-zA-Z0-9_]+),`)

// capitalizeFirst upper-cases the first rune of s. The backend names its
// columns with a leading capital while the domain models use lowercase keys;
// every outgoing field name goes through this rewrite.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// capitalizeFields rewrites a comma-separated field list.
func capitalizeFields(fields string) string {
	parts := strings.Split(fields, ",")
	for i, p := range parts {
		parts[i] = capitalizeFirst(strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}

// capitalizeSort rewrites a sort list, keeping the "-" descending prefix.
func capitalizeSort(sort string) string {
	parts := strings.Split(sort, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "-") {
			parts[i] = "-" + capitalizeFirst(strings.TrimSpace(p[1:]))
		} else {
			parts[i] = capitalizeFirst(p)
		}
	}
	return strings.Join(parts, ",")
}

// capitalizeWhere rewrites only the field position of each condition group,
// preserving operator syntax and the ~and/~or conjunctions.
func capitalizeWhere(where string) string {
	return whereField.ReplaceAllStringFunc(where, func(m string) string {
		field := m[1 : len(m)-1]
		return "(" + capitalizeFirst(field) + ","
	})
}

// capitalizeKeys returns a copy of m with every key capitalized, recursing
// into nested maps and slices.
func capitalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[capitalizeFirst(k)] = capitalizeValue(v)
	}
	return out
}

func capitalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return capitalizeKeys(t)
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = capitalizeValue(item)
		}
		return items
	default:
		return v
	}
}

// encode renders the query string, rewriting field names on the way out.
// Returns "" when no parameter is set.
func (q Query) encode() string {
	params := url.Values{}
	if q.Fields != "" {
		params.Set("fields", capitalizeFields(q.Fields))
	}
	if q.Sort != "" {
		params.Set("sort", capitalizeSort(q.Sort))
	}
	if q.Where != "" {
		params.Set("where", capitalizeWhere(q.Where))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.ViewID != "" {
		params.Set("viewId", q.ViewID)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}
