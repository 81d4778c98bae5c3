// Package source manages the operational (OLTP) store: its schema, the
// generated seed data, and whole-table extraction for the ETL.
package source

import (
	"context"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
)

// Relations are the six operational tables the ETL extracts.
var Relations = []string{"orders", "order_items", "riders", "products", "users", "couriers"}

// Schema SQL for the operational store. Categorical and date columns are
// plain text on purpose: the operational data arrives dirty, and
// cleaning it is the warehouse pipeline's job.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      VARCHAR(100),
    first_name    VARCHAR(255),
    last_name     VARCHAR(255),
    address1      VARCHAR(255),
    address2      VARCHAR(255),
    city          VARCHAR(255),
    country       VARCHAR(255),
    zip_code      VARCHAR(10),
    phone_number  VARCHAR(255),
    gender        VARCHAR(50),
    date_of_birth VARCHAR(50),
    created_at    TIMESTAMP DEFAULT NOW(),
    updated_at    TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
    id           INTEGER PRIMARY KEY,
    name         VARCHAR(255),
    description  TEXT,
    product_code VARCHAR(50),
    category     VARCHAR(100),
    price        NUMERIC(10,2),
    created_at   TIMESTAMP DEFAULT NOW(),
    updated_at   TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS couriers (
    id         INTEGER PRIMARY KEY,
    name       VARCHAR(255),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS riders (
    id           INTEGER PRIMARY KEY,
    first_name   VARCHAR(255),
    last_name    VARCHAR(255),
    courier_id   INTEGER,
    vehicle_type VARCHAR(50),
    age          INTEGER,
    gender       VARCHAR(50),
    created_at   TIMESTAMP DEFAULT NOW(),
    updated_at   TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
    id                INTEGER PRIMARY KEY,
    order_number      VARCHAR(50),
    user_id           INTEGER,
    delivery_rider_id INTEGER,
    delivery_date     VARCHAR(50),
    created_at        TIMESTAMP DEFAULT NOW(),
    updated_at        TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
    id         INTEGER PRIMARY KEY,
    order_id   INTEGER,
    product_id INTEGER,
    quantity   INTEGER
);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS order_items CASCADE;
DROP TABLE IF EXISTS orders CASCADE;
DROP TABLE IF EXISTS riders CASCADE;
DROP TABLE IF EXISTS couriers CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS users CASCADE;
`

// CreateSchema creates the operational tables.
func CreateSchema(ctx context.Context, q db.Querier) error {
	_, err := q.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the operational tables.
func DropSchema(ctx context.Context, q db.Querier) error {
	_, err := q.Exec(ctx, dropSchemaSQL)
	return err
}
