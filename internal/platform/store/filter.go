package store

import (
	"fmt"
	"strings"
)

// Filter is a conjunctive (AND) set of criteria over document fields. The
// zero value matches every document in the collection.
type Filter struct {
	clauses []clause
}

type clause struct {
	// exactly one of these is set
	contains    *fieldMatch
	containsAny *orMatch
	eq          *fieldMatch
}

type fieldMatch struct {
	field string
	value string
}

type orMatch struct {
	fields []string
	value  string
}

// Contains adds a case-insensitive substring match on a single field.
func (f Filter) Contains(field, q string) Filter {
	f.clauses = append(f.clauses, clause{contains: &fieldMatch{field: field, value: q}})
	return f
}

// ContainsAny adds an OR-group: the document matches when any of the fields
// contains q case-insensitively.
func (f Filter) ContainsAny(fields []string, q string) Filter {
	f.clauses = append(f.clauses, clause{containsAny: &orMatch{fields: fields, value: q}})
	return f
}

// Eq adds an exact match on a single field.
func (f Filter) Eq(field, value string) Filter {
	f.clauses = append(f.clauses, clause{eq: &fieldMatch{field: field, value: value}})
	return f
}

// IsEmpty reports whether the filter has no criteria.
func (f Filter) IsEmpty() bool {
	return len(f.clauses) == 0
}

// SQL renders the filter as a WHERE fragment (without a leading "AND") using
// positional parameters starting at idx. An empty filter renders "TRUE".
func (f Filter) SQL(idx int) (string, []interface{}, int) {
	if f.IsEmpty() {
		return "TRUE", nil, idx
	}

	var parts []string
	var args []interface{}
	for _, c := range f.clauses {
		switch {
		case c.contains != nil:
			parts = append(parts, fmt.Sprintf(`doc->>'%s' ILIKE $%d ESCAPE '\'`, fieldName(c.contains.field), idx))
			args = append(args, likePattern(c.contains.value))
			idx++
		case c.containsAny != nil:
			var ors []string
			for _, field := range c.containsAny.fields {
				ors = append(ors, fmt.Sprintf(`doc->>'%s' ILIKE $%d ESCAPE '\'`, fieldName(field), idx))
				args = append(args, likePattern(c.containsAny.value))
				idx++
			}
			parts = append(parts, "("+strings.Join(ors, " OR ")+")")
		case c.eq != nil:
			parts = append(parts, fmt.Sprintf(`doc->>'%s' = $%d`, fieldName(c.eq.field), idx))
			args = append(args, c.eq.value)
			idx++
		}
	}
	return strings.Join(parts, " AND "), args, idx
}

// likePattern builds a %substring% pattern with LIKE metacharacters in the
// user input escaped, so a literal "%" in a query matches a literal "%".
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// fieldName returns field unchanged after checking it is a plain snake_case
// identifier. Field names are interpolated into SQL, not parameterized, so
// callers must never pass request data here; anything out of shape panics
// before it can reach the database.
func fieldName(field string) string {
	if field == "" {
		panic(`store: empty document field name`)
	}
	for i, r := range field {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			panic(fmt.Sprintf("store: invalid document field name %q", field))
		}
	}
	return field
}
