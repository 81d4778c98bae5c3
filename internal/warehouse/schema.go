// Package warehouse declares the star schema and writes normalized
// record sets into it.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// Column describes one warehouse table column.
type Column struct {
	Name    string
	Type    string
	NotNull bool
}

// ForeignKey describes a reference to a dimension table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
	OnUpdate  string
}

// Table describes a warehouse table: ordered columns, primary key and
// foreign keys with their cascade rules.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// DimUsers is the user dimension.
var DimUsers = Table{
	Name: "dim_users",
	Columns: []Column{
		{Name: "user_id", Type: "INTEGER", NotNull: true},
		{Name: "first_name", Type: "VARCHAR(255)"},
		{Name: "last_name", Type: "VARCHAR(255)"},
		{Name: "address1", Type: "VARCHAR(255)"},
		{Name: "address2", Type: "VARCHAR(255)"},
		{Name: "city", Type: "VARCHAR(255)"},
		{Name: "country", Type: "VARCHAR(255)"},
		{Name: "zip_code", Type: "VARCHAR(10)"},
		{Name: "phone_number", Type: "VARCHAR(255)"},
		{Name: "gender", Type: "VARCHAR(1)"},
		{Name: "date_of_birth", Type: "DATE"},
		{Name: "created_at", Type: "TIMESTAMP"},
		{Name: "updated_at", Type: "TIMESTAMP"},
	},
	PrimaryKey: []string{"user_id"},
}

// DimProducts is the product dimension.
var DimProducts = Table{
	Name: "dim_products",
	Columns: []Column{
		{Name: "product_id", Type: "INTEGER", NotNull: true},
		{Name: "name", Type: "VARCHAR(255)"},
		{Name: "category", Type: "VARCHAR(255)"},
		{Name: "price", Type: "NUMERIC(10,2)"},
		{Name: "created_at", Type: "TIMESTAMP"},
		{Name: "updated_at", Type: "TIMESTAMP"},
	},
	PrimaryKey: []string{"product_id"},
}

// DimRiders is the rider dimension. The courier is denormalized into the
// rider record: only the courier display name survives the ETL merge.
var DimRiders = Table{
	Name: "dim_riders",
	Columns: []Column{
		{Name: "rider_id", Type: "INTEGER", NotNull: true},
		{Name: "first_name", Type: "VARCHAR(255)"},
		{Name: "last_name", Type: "VARCHAR(255)"},
		{Name: "courier_name", Type: "VARCHAR(255)"},
		{Name: "vehicle_type", Type: "VARCHAR(255)"},
		{Name: "created_at", Type: "TIMESTAMP"},
		{Name: "updated_at", Type: "TIMESTAMP"},
	},
	PrimaryKey: []string{"rider_id"},
}

// FactOrders is the fact table at order line-item grain: one row per
// (order, product) pair. An order with N line items produces N rows,
// so order_id alone cannot be unique and the primary key is composite.
var FactOrders = Table{
	Name: "fact_orders",
	Columns: []Column{
		{Name: "order_id", Type: "INTEGER", NotNull: true},
		{Name: "user_id", Type: "INTEGER", NotNull: true},
		{Name: "product_id", Type: "INTEGER", NotNull: true},
		// Nullable: the courier merge can drop a rider from the
		// dimension while orders it delivered remain facts.
		{Name: "rider_id", Type: "INTEGER"},
		{Name: "delivery_date", Type: "DATE"},
		{Name: "quantity", Type: "INTEGER", NotNull: true},
		{Name: "created_at", Type: "TIMESTAMP"},
		{Name: "updated_at", Type: "TIMESTAMP"},
	},
	PrimaryKey: []string{"order_id", "product_id"},
	ForeignKeys: []ForeignKey{
		{Column: "user_id", RefTable: "dim_users", RefColumn: "user_id", OnDelete: "CASCADE", OnUpdate: "CASCADE"},
		{Column: "product_id", RefTable: "dim_products", RefColumn: "product_id", OnDelete: "CASCADE", OnUpdate: "CASCADE"},
		{Column: "rider_id", RefTable: "dim_riders", RefColumn: "rider_id", OnDelete: "SET NULL", OnUpdate: "CASCADE"},
	},
}

// Tables lists the star schema in dependency order: dimensions first,
// then the fact table that references them.
var Tables = []Table{DimUsers, DimProducts, DimRiders, FactOrders}

// ColumnNames returns the ordered column names.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL renders the CREATE TABLE statement.
func (t Table) CreateSQL() string {
	var defs []string
	for _, c := range t.Columns {
		def := fmt.Sprintf("%s %s", c.Name, c.Type)
		if c.NotNull {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	if len(t.PrimaryKey) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", ")))
	}
	for _, fk := range t.ForeignKeys {
		def := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.RefTable, fk.RefColumn)
		if fk.OnDelete != "" {
			def += " ON DELETE " + fk.OnDelete
		}
		if fk.OnUpdate != "" {
			def += " ON UPDATE " + fk.OnUpdate
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", t.Name, strings.Join(defs, ",\n    "))
}

// DropSQL renders the DROP TABLE statement.
func (t Table) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", t.Name)
}

// DropAll drops every warehouse table, fact table first. Destructive and
// not transactional across tables: a failure between drop and recreate
// leaves the warehouse empty until the next successful run.
func DropAll(ctx context.Context, q db.Querier) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		t := Tables[i]
		logging.Debug().Str("table", t.Name).Msg("Dropping table")
		if _, err := q.Exec(ctx, t.DropSQL()); err != nil {
			return fmt.Errorf("failed to drop %s: %w", t.Name, err)
		}
	}
	return nil
}

// CreateAll creates every warehouse table in dependency order.
func CreateAll(ctx context.Context, q db.Querier) error {
	for _, t := range Tables {
		logging.Debug().Str("table", t.Name).Msg("Creating table")
		if _, err := q.Exec(ctx, t.CreateSQL()); err != nil {
			return fmt.Errorf("failed to create %s: %w", t.Name, err)
		}
	}
	return nil
}
