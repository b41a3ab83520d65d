// Package catalog builds filtered, sorted and paginated product queries from
// request parameters. Filter values are always passed as bound parameters;
// the only caller-influenced identifier is the sort column, which must come
// from a fixed allow-list.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 12

	defaultSortColumn = "created_at"
)

// sortColumns is the compile-time allow-list of sortable columns. Anything
// else falls back to created_at.
var sortColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
	"brand":      true,
}

// searchColumns are OR-combined for the case-insensitive substring search.
var searchColumns = []string{"name", "brand", "description"}

// Predicate is one typed filter condition. Column and Op are fixed by the
// builder, never by the caller; Value is always bound as a placeholder.
type Predicate struct {
	Column string
	Op     string
	Value  any
}

func (p Predicate) clause() string {
	return p.Column + " " + p.Op + " ?"
}

// Options holds the recognized catalog filters. Zero values mean the filter
// is not applied.
type Options struct {
	Category  string
	Gender    string
	Brand     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Predicates compiles the present filters into typed conditions.
func (o Options) Predicates() []Predicate {
	var preds []Predicate
	if o.Category != "" {
		preds = append(preds, Predicate{Column: "category", Op: "=", Value: o.Category})
	}
	if o.Gender != "" {
		preds = append(preds, Predicate{Column: "gender", Op: "=", Value: o.Gender})
	}
	if o.Brand != "" {
		preds = append(preds, Predicate{Column: "brand", Op: "=", Value: o.Brand})
	}
	if o.MinPrice != nil {
		preds = append(preds, Predicate{Column: "price", Op: ">=", Value: *o.MinPrice})
	}
	if o.MaxPrice != nil {
		preds = append(preds, Predicate{Column: "price", Op: "<=", Value: *o.MaxPrice})
	}
	return preds
}

// Apply attaches every filter to the query as parameterized WHERE clauses.
// The same options must be applied to both the page query and the count
// query so the two stay in agreement.
func (o Options) Apply(query *gorm.DB) *gorm.DB {
	for _, p := range o.Predicates() {
		query = query.Where(p.clause(), p.Value)
	}
	if o.Search != "" {
		needle := "%" + strings.ToLower(o.Search) + "%"
		clauses := make([]string, 0, len(searchColumns))
		args := make([]any, 0, len(searchColumns))
		for _, col := range searchColumns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, needle)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return query
}

// OrderClause returns the ORDER BY expression. The column is validated
// against the allow-list, the direction defaults to descending.
func (o Options) OrderClause() string {
	column := o.SortBy
	if !sortColumns[column] {
		column = defaultSortColumn
	}
	direction := "DESC"
	if strings.EqualFold(o.SortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// PageOrDefault returns the 1-based page number.
func (o Options) PageOrDefault() int {
	if o.Page < 1 {
		return 1
	}
	return o.Page
}

// LimitOrDefault returns the page size.
func (o Options) LimitOrDefault() int {
	if o.Limit < 1 {
		return DefaultLimit
	}
	return o.Limit
}

// Offset returns the row offset for the requested page.
func (o Options) Offset() int {
	return (o.PageOrDefault() - 1) * o.LimitOrDefault()
}
