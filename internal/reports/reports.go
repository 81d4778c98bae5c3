package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// Client executes report queries against the warehouse.
type Client struct {
	DB db.Querier
}

// NewClient creates a report client over the given warehouse handle.
func NewClient(q db.Querier) *Client {
	return &Client{DB: q}
}

// run executes a built statement and maps each row to a column-keyed
// mapping. Store-side failures are logged here, at the execution
// boundary, and returned for the caller to surface; they are never
// retried.
func (c *Client) run(ctx context.Context, sql string, args []any) ([]map[string]any, error) {
	rows, err := c.DB.Query(ctx, sql, args...)
	if err != nil {
		logging.Error().Err(err).Str("sql", sql).Msg("Report query failed")
		return nil, err
	}
	defer rows.Close()

	results, err := collectRows(rows)
	if err != nil {
		logging.Error().Err(err).Msg("Report query failed")
		return nil, err
	}
	return results, nil
}

func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	results := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// OrdersOverTime reports order counts bucketed by the requested time
// granularity (default month).
func (c *Client) OrdersOverTime(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildOrdersOverTime(p)
	return c.run(ctx, sql, args)
}

func buildOrdersOverTime(p Params) (string, []any) {
	period := periodExpr(p.Granularity, "month")
	b := newBuilder("fact_orders f")
	b.sel(
		period+" AS period",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"COUNT(DISTINCT f.user_id) AS unique_customers",
		"SUM(f.quantity) AS total_items",
	)
	b.applyFilters(p)
	b.group(period)
	b.order("period")
	return b.sql(), b.args
}

// OrdersByLocation reports order counts grouped by city or country.
func (c *Client) OrdersByLocation(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildOrdersByLocation(p)
	return c.run(ctx, sql, args)
}

func buildOrdersByLocation(p Params) (string, []any) {
	field := locationField(p.LocationType)
	b := newBuilder("fact_orders f")
	b.join(joinUsers)
	b.sel(
		field+" AS location",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"COUNT(DISTINCT f.user_id) AS unique_customers",
		"SUM(f.quantity) AS total_items",
	)
	b.applyFilters(p)
	b.group(field)
	b.order("total_orders " + direction(p))
	return b.sql(), b.args
}

// OrdersByCategory reports order counts per product category.
func (c *Client) OrdersByCategory(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildOrdersByCategory(p)
	return c.run(ctx, sql, args)
}

func buildOrdersByCategory(p Params) (string, []any) {
	b := newBuilder("fact_orders f")
	b.join(joinProducts)
	b.sel(
		"p.category",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"SUM(f.quantity) AS total_quantity",
		"COUNT(DISTINCT f.user_id) AS unique_customers",
	)
	b.applyFilters(p)
	b.group("p.category")
	b.order("total_orders " + direction(p))
	return b.sql(), b.args
}

// SalesOverTime reports revenue bucketed by the requested time
// granularity (default day).
func (c *Client) SalesOverTime(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildSalesOverTime(p)
	return c.run(ctx, sql, args)
}

func buildSalesOverTime(p Params) (string, []any) {
	period := periodExpr(p.Granularity, "day")
	b := newBuilder("fact_orders f")
	b.join(joinProducts)
	b.sel(
		period+" AS period",
		"SUM(f.quantity * p.price) AS total_sales",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"SUM(f.quantity) AS total_items",
	)
	b.applyFilters(p)
	b.group(period)
	b.order("period")
	return b.sql(), b.args
}

// SalesByLocation reports revenue grouped by city or country.
func (c *Client) SalesByLocation(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildSalesByLocation(p)
	return c.run(ctx, sql, args)
}

func buildSalesByLocation(p Params) (string, []any) {
	field := locationField(p.LocationType)
	b := newBuilder("fact_orders f")
	b.join(joinUsers)
	b.join(joinProducts)
	b.sel(
		field+" AS location",
		"SUM(f.quantity * p.price) AS total_sales",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"SUM(f.quantity) AS total_items",
	)
	b.applyFilters(p)
	b.group(field)
	b.order("total_sales " + direction(p))
	return b.sql(), b.args
}

// SalesByCategory reports revenue per product category.
func (c *Client) SalesByCategory(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildSalesByCategory(p)
	return c.run(ctx, sql, args)
}

func buildSalesByCategory(p Params) (string, []any) {
	b := newBuilder("fact_orders f")
	b.join(joinProducts)
	b.sel(
		"p.category",
		"SUM(f.quantity * p.price) AS total_sales",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"SUM(f.quantity) AS total_items",
	)
	b.applyFilters(p)
	b.group("p.category")
	b.order("total_sales " + direction(p))
	return b.sql(), b.args
}

// OrdersByDemographics reports order counts by gender, age band and
// location.
func (c *Client) OrdersByDemographics(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildOrdersByDemographics(p)
	return c.run(ctx, sql, args)
}

func buildOrdersByDemographics(p Params) (string, []any) {
	field := locationField(p.LocationType)
	bucket := ageBucketExpr()
	b := newBuilder("fact_orders f")
	b.join(joinUsers)
	b.sel(
		"u.gender",
		bucket+" AS age_group",
		field+" AS location",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"COUNT(DISTINCT u.user_id) AS unique_customers",
	)
	b.applyFilters(p)
	b.group("u.gender", bucket, field)
	b.order("total_orders " + direction(p))
	return b.sql(), b.args
}

// SegmentsRevenue reports which customer segment contributes the most
// revenue. Segment is one of age, gender, location (default age).
func (c *Client) SegmentsRevenue(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildSegmentsRevenue(p)
	return c.run(ctx, sql, args)
}

func buildSegmentsRevenue(p Params) (string, []any) {
	var segment string
	switch p.Segment {
	case "gender":
		segment = "u.gender"
	case "location":
		segment = locationField(p.LocationType)
	default:
		segment = ageBucketExpr()
	}
	b := newBuilder("fact_orders f")
	b.join(joinUsers)
	b.join(joinProducts)
	b.sel(
		segment+" AS segment",
		"SUM(f.quantity * p.price) AS total_revenue",
		"COUNT(DISTINCT f.order_id) AS total_orders",
		"COUNT(DISTINCT u.user_id) AS unique_customers",
		"AVG(f.quantity * p.price) AS avg_order_value",
	)
	b.applyFilters(p)
	b.group(segment)
	b.order("total_revenue " + direction(p))
	return b.sql(), b.args
}

// TopProductsByCategory ranks products within each category by the
// selected measure using a dense rank, so ties share a rank and all tied
// rows are kept.
func (c *Client) TopProductsByCategory(ctx context.Context, p Params) ([]map[string]any, error) {
	sql, args := buildTopProductsByCategory(p)
	return c.run(ctx, sql, args)
}

func buildTopProductsByCategory(p Params) (string, []any) {
	measure, alias := "SUM(f.quantity * p.price)", "total_revenue"
	if p.Metric == "quantity" {
		measure, alias = "SUM(f.quantity)", "total_quantity"
	}
	topN := p.TopN
	if topN < 1 {
		topN = 5
	}

	inner := newBuilder("fact_orders f")
	inner.join(joinProducts)
	inner.sel(
		"p.category",
		"p.name",
		measure+" AS "+alias,
		fmt.Sprintf("DENSE_RANK() OVER (PARTITION BY p.category ORDER BY %s %s) AS rnk",
			measure, direction(p)),
	)
	inner.applyFilters(p)
	inner.group("p.category", "p.name")

	limit := inner.bind(topN)
	sql := fmt.Sprintf(
		"SELECT category, name, %s, rnk FROM (%s) ranked WHERE rnk <= %s ORDER BY category, rnk",
		alias, inner.sql(), limit)
	return sql, inner.args
}

// Countries lists the distinct countries present in the user dimension,
// shaped for filter dropdowns.
func (c *Client) Countries(ctx context.Context) ([]map[string]any, error) {
	rows, err := c.run(ctx, `SELECT DISTINCT country FROM dim_users WHERE country IS NOT NULL ORDER BY country`, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	for _, row := range rows {
		country, _ := row["country"].(string)
		if country == "" {
			continue
		}
		out = append(out, map[string]any{
			"id":   slug(country),
			"name": country,
		})
	}
	return out, nil
}

// Cities lists the distinct cities present in the user dimension,
// optionally narrowed to one country.
func (c *Client) Cities(ctx context.Context, country string) ([]map[string]any, error) {
	sql := `SELECT DISTINCT city, country FROM dim_users WHERE city IS NOT NULL`
	var args []any
	if country != "" {
		sql += ` AND country = $1`
		args = append(args, country)
	}
	sql += ` ORDER BY city`

	rows, err := c.run(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	for _, row := range rows {
		city, _ := row["city"].(string)
		if city == "" {
			continue
		}
		rowCountry, _ := row["country"].(string)
		out = append(out, map[string]any{
			"id":      slug(city) + "_" + slug(rowCountry),
			"city":    city,
			"country": rowCountry,
		})
	}
	return out, nil
}

// direction returns the ORDER BY direction, descending unless the caller
// asked for ascending (lowest performers).
func direction(p Params) string {
	if p.Ascending {
		return "ASC"
	}
	return "DESC"
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}
