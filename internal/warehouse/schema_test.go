package warehouse

import (
	"strings"
	"testing"
)

func TestFactOrdersCompositeKey(t *testing.T) {
	sql := FactOrders.CreateSQL()

	// Line-item grain requires the composite key; order_id alone would
	// reject multi-item orders.
	if !strings.Contains(sql, "PRIMARY KEY (order_id, product_id)") {
		t.Errorf("fact_orders missing composite primary key:\n%s", sql)
	}
}

func TestFactOrdersForeignKeys(t *testing.T) {
	sql := FactOrders.CreateSQL()

	for _, want := range []string{
		"FOREIGN KEY (user_id) REFERENCES dim_users(user_id) ON DELETE CASCADE ON UPDATE CASCADE",
		"FOREIGN KEY (product_id) REFERENCES dim_products(product_id) ON DELETE CASCADE ON UPDATE CASCADE",
		"FOREIGN KEY (rider_id) REFERENCES dim_riders(rider_id) ON DELETE SET NULL ON UPDATE CASCADE",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("fact_orders missing %q:\n%s", want, sql)
		}
	}
}

func TestDimensionKeys(t *testing.T) {
	tests := []struct {
		table Table
		pk    string
	}{
		{DimUsers, "PRIMARY KEY (user_id)"},
		{DimProducts, "PRIMARY KEY (product_id)"},
		{DimRiders, "PRIMARY KEY (rider_id)"},
	}
	for _, tt := range tests {
		sql := tt.table.CreateSQL()
		if !strings.Contains(sql, tt.pk) {
			t.Errorf("%s missing %q:\n%s", tt.table.Name, tt.pk, sql)
		}
	}
}

func TestTablesDependencyOrder(t *testing.T) {
	// Dimensions must come before the fact table that references them.
	if Tables[len(Tables)-1].Name != "fact_orders" {
		t.Errorf("fact_orders must be created last, got order %v", tableNames())
	}
}

func tableNames() []string {
	names := make([]string, len(Tables))
	for i, tbl := range Tables {
		names[i] = tbl.Name
	}
	return names
}

func TestNotNullRendering(t *testing.T) {
	sql := FactOrders.CreateSQL()
	if !strings.Contains(sql, "quantity INTEGER NOT NULL") {
		t.Errorf("quantity should be NOT NULL:\n%s", sql)
	}
	if strings.Contains(sql, "delivery_date DATE NOT NULL") {
		t.Errorf("delivery_date must stay nullable:\n%s", sql)
	}
	// The courier merge can drop a rider from the dimension while the
	// orders it delivered remain facts with a detached rider reference.
	if strings.Contains(sql, "rider_id INTEGER NOT NULL") {
		t.Errorf("rider_id must stay nullable:\n%s", sql)
	}
}

func TestDropSQL(t *testing.T) {
	sql := DimUsers.DropSQL()
	if sql != "DROP TABLE IF EXISTS dim_users CASCADE" {
		t.Errorf("DropSQL = %q", sql)
	}
}

func TestRiderDimensionHasNoCourierID(t *testing.T) {
	// The courier entity is flattened into the rider record by name only.
	for _, c := range DimRiders.Columns {
		if c.Name == "courier_id" {
			t.Error("dim_riders must not carry courier_id")
		}
	}
	found := false
	for _, c := range DimRiders.Columns {
		if c.Name == "courier_name" {
			found = true
		}
	}
	if !found {
		t.Error("dim_riders missing courier_name")
	}
}
