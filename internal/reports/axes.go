// Package reports composes and executes the analytical queries behind
// the reporting API. Column and table fragments are chosen from fixed
// allow-lists; every user-supplied value is bound as a parameter, never
// interpolated into the statement text.
package reports

import (
	"sort"
	"strconv"
)

// periodExprs maps a time granularity to the bucket expression applied
// to the order's creation timestamp.
var periodExprs = map[string]string{
	"day":     "to_char(f.created_at, 'YYYY-MM-DD')",
	"week":    "to_char(f.created_at, 'IYYY-IW')",
	"month":   "to_char(f.created_at, 'YYYY-MM')",
	"quarter": "to_char(f.created_at, 'YYYY\"-Q\"Q')",
	"year":    "to_char(f.created_at, 'YYYY')",
}

// periodExpr resolves a granularity, falling back to the endpoint's
// documented default for unknown values rather than erroring.
func periodExpr(granularity, fallback string) string {
	if expr, ok := periodExprs[granularity]; ok {
		return expr
	}
	return periodExprs[fallback]
}

// locationField resolves the user-dimension column for a location
// granularity, defaulting to city.
func locationField(locationType string) string {
	if locationType == "country" {
		return "u.country"
	}
	return "u.city"
}

// ageExpr is the user's age in whole years as of today.
const ageExpr = "date_part('year', age(current_date, u.date_of_birth))"

// ageBands maps an age-group label to its inclusive year range.
var ageBands = map[string][2]int{
	"18-24": {18, 24},
	"25-34": {25, 34},
	"35-44": {35, 44},
	"45-54": {45, 54},
	"55-64": {55, 64},
	"65+":   {65, 150},
}

// ageBandLabels returns the known band labels in ascending order.
func ageBandLabels() []string {
	labels := make([]string, 0, len(ageBands))
	for label := range ageBands {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return ageBands[labels[i]][0] < ageBands[labels[j]][0]
	})
	return labels
}

// ageBucketExpr renders the CASE expression that buckets users into the
// same bands the filter uses.
func ageBucketExpr() string {
	expr := "CASE\n"
	for _, label := range ageBandLabels() {
		if label == "65+" {
			continue
		}
		band := ageBands[label]
		expr += "                WHEN " + ageExpr +
			" BETWEEN " + strconv.Itoa(band[0]) + " AND " + strconv.Itoa(band[1]) +
			" THEN '" + label + "'\n"
	}
	expr += "                ELSE '65+'\n            END"
	return expr
}
