package reports

import (
	"fmt"
	"strings"
)

// Params carries the orthogonal axes a report request can set. Zero
// values mean "no constraint" (or the endpoint default, for axis
// selectors).
type Params struct {
	// Granularity is the time bucket: day, week, month, quarter, year.
	Granularity string

	// LocationType selects the location axis: city or country.
	LocationType string

	// Segment selects the customer segment axis: age, gender, location.
	Segment string

	// StartDate and EndDate are inclusive bounds on the order creation
	// timestamp, as received from the caller.
	StartDate string
	EndDate   string

	// Set filters; empty slices impose no predicate.
	Countries  []string
	Cities     []string
	Categories []string
	Couriers   []string
	Genders    []string
	AgeGroups  []string

	// Metric selects the ranking measure: quantity or revenue.
	Metric string

	// TopN bounds ranked results; Ascending flips top performers into
	// lowest performers on the same code path.
	TopN      int
	Ascending bool
}

// builder accumulates the pieces of one aggregate statement alongside
// its bound parameters.
type builder struct {
	selects    []string
	from       string
	joins      []string
	conditions []string
	groupBy    []string
	orderBy    string
	args       []any
}

func newBuilder(from string) *builder {
	return &builder{from: from}
}

// bind registers a value and returns its placeholder.
func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) sel(exprs ...string) {
	b.selects = append(b.selects, exprs...)
}

// join adds a JOIN clause once; repeated calls with the same clause are
// collapsed so filters and projections can both require a table.
func (b *builder) join(clause string) {
	for _, j := range b.joins {
		if j == clause {
			return
		}
	}
	b.joins = append(b.joins, clause)
}

func (b *builder) where(condition string) {
	b.conditions = append(b.conditions, condition)
}

// whereIn adds an IN predicate with one bound parameter per value.
// Empty lists impose no predicate.
func (b *builder) whereIn(column string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(v)
	}
	b.where(fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
}

func (b *builder) group(exprs ...string) {
	b.groupBy = append(b.groupBy, exprs...)
}

func (b *builder) order(expr string) {
	b.orderBy = expr
}

// sql renders the statement.
func (b *builder) sql() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conditions, " AND "))
	}
	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	return sb.String()
}

const (
	joinUsers    = "JOIN dim_users u ON f.user_id = u.user_id"
	joinProducts = "JOIN dim_products p ON f.product_id = p.product_id"
	joinRiders   = "JOIN dim_riders r ON f.rider_id = r.rider_id"
)

// applyFilters adds the common predicates: date range and the set
// filters. Joins are pulled in as the filters need them.
func (b *builder) applyFilters(p Params) {
	if p.StartDate != "" {
		b.where("f.created_at >= " + b.bind(p.StartDate))
	}
	if p.EndDate != "" {
		b.where("f.created_at <= " + b.bind(p.EndDate))
	}
	if len(p.Countries) > 0 {
		b.join(joinUsers)
		b.whereIn("u.country", p.Countries)
	}
	if len(p.Cities) > 0 {
		b.join(joinUsers)
		b.whereIn("u.city", p.Cities)
	}
	if len(p.Categories) > 0 {
		b.join(joinProducts)
		b.whereIn("p.category", p.Categories)
	}
	if len(p.Couriers) > 0 {
		b.join(joinRiders)
		b.whereIn("r.courier_name", p.Couriers)
	}
	if len(p.Genders) > 0 {
		b.join(joinUsers)
		b.whereIn("u.gender", p.Genders)
	}
	if len(p.AgeGroups) > 0 {
		b.join(joinUsers)
		b.whereAgeGroups(p.AgeGroups)
	}
}

// whereAgeGroups translates age-band labels into inclusive year-range
// predicates joined by OR. Unknown labels are skipped.
func (b *builder) whereAgeGroups(labels []string) {
	var ranges []string
	for _, label := range labels {
		band, ok := ageBands[label]
		if !ok {
			continue
		}
		ranges = append(ranges, fmt.Sprintf("%s BETWEEN %s AND %s",
			ageExpr, b.bind(band[0]), b.bind(band[1])))
	}
	if len(ranges) == 0 {
		return
	}
	if len(ranges) == 1 {
		b.where(ranges[0])
		return
	}
	b.where("(" + strings.Join(ranges, " OR ") + ")")
}
