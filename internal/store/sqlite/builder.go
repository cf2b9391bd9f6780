package sqlite

import (
	"strings"
)

// whereBuilder joins SQL conditions with AND and collects their arguments
// in placeholder order.
//
//	wb := newWhereBuilder()
//	wb.add("l.user_id = ?", ownerID)
//	wb.add("l.favorite = 1")
//	where, args := wb.build() // "l.user_id = ? AND l.favorite = 1", [ownerID]
type whereBuilder struct {
	clauses []string
	args    []any
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{}
}

// add appends a condition with its arguments.
func (wb *whereBuilder) add(clause string, args ...any) *whereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// addAny appends the OR of conditions as one parenthesised clause. It is a
// no-op without conditions.
func (wb *whereBuilder) addAny(clauses []string, args ...any) *whereBuilder {
	if len(clauses) == 0 {
		return wb
	}
	return wb.add("("+strings.Join(clauses, " OR ")+")", args...)
}

// addNotIn excludes values of column. An empty set excludes nothing.
func (wb *whereBuilder) addNotIn(column string, ids []int64) *whereBuilder {
	if len(ids) == 0 {
		return wb
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return wb.add(column+" NOT IN ("+placeholders(len(ids))+")", args...)
}

// build returns the joined conditions, or "1=1" when there are none.
func (wb *whereBuilder) build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", nil
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// containsPattern returns a LIKE pattern matching any text containing s,
// with LIKE wildcards in s escaped by '\'.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
