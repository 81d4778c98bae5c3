package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereInBindsEveryValue(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.whereIn("u.country", []string{"USA", "Canada"})

	sql := b.sql()
	assert.Contains(t, sql, "u.country IN ($1, $2)")
	assert.NotContains(t, sql, "USA")
	assert.NotContains(t, sql, "Canada")
	assert.Equal(t, []any{"USA", "Canada"}, b.args)
}

func TestWhereInEmptyAddsNoPredicate(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.whereIn("u.country", nil)

	assert.NotContains(t, b.sql(), "WHERE")
	assert.Empty(t, b.args)
}

func TestJoinDeduped(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("u.city")
	b.join(joinUsers)
	b.join(joinUsers)

	assert.Equal(t, 1, strings.Count(b.sql(), "JOIN dim_users"))
}

func TestApplyFiltersDateRange(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.applyFilters(Params{StartDate: "2024-01-01", EndDate: "2024-12-31"})

	sql := b.sql()
	assert.Contains(t, sql, "f.created_at >= $1")
	assert.Contains(t, sql, "f.created_at <= $2")
	assert.Equal(t, []any{"2024-01-01", "2024-12-31"}, b.args)
}

func TestApplyFiltersPullsJoins(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.applyFilters(Params{
		Categories: []string{"Toys"},
		Couriers:   []string{"FastShip"},
		Genders:    []string{"F"},
	})

	sql := b.sql()
	assert.Contains(t, sql, "JOIN dim_products")
	assert.Contains(t, sql, "JOIN dim_riders")
	assert.Contains(t, sql, "JOIN dim_users")
}

func TestWhereAgeGroups(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.whereAgeGroups([]string{"18-24", "65+"})

	sql := b.sql()
	assert.Contains(t, sql, "BETWEEN $1 AND $2")
	assert.Contains(t, sql, "BETWEEN $3 AND $4")
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []any{18, 24, 65, 150}, b.args)
}

func TestWhereAgeGroupsSkipsUnknownLabels(t *testing.T) {
	b := newBuilder("fact_orders f")
	b.sel("COUNT(*) AS n")
	b.whereAgeGroups([]string{"bogus"})

	assert.NotContains(t, b.sql(), "WHERE")
	assert.Empty(t, b.args)
}

func TestPeriodExprFallback(t *testing.T) {
	assert.Equal(t, periodExprs["month"], periodExpr("fortnight", "month"))
	assert.Equal(t, periodExprs["quarter"], periodExpr("quarter", "month"))
}

func TestLocationFieldDefaultsToCity(t *testing.T) {
	assert.Equal(t, "u.city", locationField(""))
	assert.Equal(t, "u.city", locationField("region"))
	assert.Equal(t, "u.country", locationField("country"))
}

func TestAgeBucketExprCoversEveryBand(t *testing.T) {
	expr := ageBucketExpr()
	for _, label := range ageBandLabels() {
		require.Contains(t, expr, "'"+label+"'")
	}
	assert.Contains(t, expr, "ELSE '65+'")
}
