package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/trishaguarin/STADVDB-MCO1/internal/config"
	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

const insertBatchSize = 1000

// Free-text values as the operational systems actually record them.
// The ETL normalizers exist because of lists like these.
var rawGenders = []string{
	"Male", "male", "M", "F", "f", "Female", "FEMALE", "m ", "other", "unknown", "",
}

var rawCategories = []string{
	"toy", "Toys", "men's apparel", "clothes", "make up", "laptops", "bag",
	"Electronics", "home decor", "widgets", "Sports", "books", "nan", "",
}

var vehicleTypes = []string{"motorcycle", "bicycle", "car", "scooter", "van"}

// dateLayouts are the formats dates show up in across source systems.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "Jan 2, 2006", "02-01-2006"}

// Seeder fills the operational store with generated data, deliberately
// messy where the real systems are messy.
type Seeder struct {
	faker *gofakeit.Faker
	cfg   config.SeedConfig
}

// NewSeeder creates a seeder with a time-based random seed.
func NewSeeder(cfg config.SeedConfig) *Seeder {
	return &Seeder{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
		cfg:   cfg,
	}
}

// Run drops and recreates the source schema, then generates all six
// relations in reference order.
func (s *Seeder) Run(ctx context.Context, q db.Querier) error {
	if err := DropSchema(ctx, q); err != nil {
		return fmt.Errorf("failed to drop source schema: %w", err)
	}
	if err := CreateSchema(ctx, q); err != nil {
		return fmt.Errorf("failed to create source schema: %w", err)
	}

	if err := s.generateUsers(ctx, q); err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}
	if err := s.generateProducts(ctx, q); err != nil {
		return fmt.Errorf("failed to generate products: %w", err)
	}
	if err := s.generateCouriers(ctx, q); err != nil {
		return fmt.Errorf("failed to generate couriers: %w", err)
	}
	if err := s.generateRiders(ctx, q); err != nil {
		return fmt.Errorf("failed to generate riders: %w", err)
	}
	if err := s.generateOrders(ctx, q); err != nil {
		return fmt.Errorf("failed to generate orders: %w", err)
	}
	return nil
}

func (s *Seeder) timestamp() string {
	start := time.Now().AddDate(-2, 0, 0)
	return s.faker.DateRange(start, time.Now()).Format("2006-01-02 15:04:05")
}

// messyDate renders a date in one of the supported layouts, or junk.
func (s *Seeder) messyDate(t time.Time) string {
	roll := s.faker.Number(1, 100)
	switch {
	case roll <= 4:
		return ""
	case roll <= 7:
		return "unknown"
	}
	return t.Format(choose(s.faker, dateLayouts))
}

func (s *Seeder) generateUsers(ctx context.Context, q db.Querier) error {
	logging.Info().Int("count", s.cfg.Users).Msg("Generating users")
	batch := make([]string, 0, insertBatchSize)

	for i := 1; i <= s.cfg.Users; i++ {
		dob := s.faker.DateRange(
			time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC))
		ts := s.timestamp()

		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s')",
			i,
			escapeSingleQuote(s.faker.Username()),
			escapeSingleQuote(s.faker.FirstName()),
			escapeSingleQuote(s.faker.LastName()),
			escapeSingleQuote(s.faker.Street()),
			escapeSingleQuote(s.faker.Street()),
			escapeSingleQuote(s.faker.City()),
			escapeSingleQuote(s.faker.Country()),
			s.faker.Zip(),
			s.faker.Phone(),
			escapeSingleQuote(choose(s.faker, rawGenders)),
			escapeSingleQuote(s.messyDate(dob)),
			ts, ts,
		))

		if len(batch) >= insertBatchSize {
			if err := executeBatchInsert(ctx, q, "users",
				"(id, username, first_name, last_name, address1, address2, city, country, zip_code, phone_number, gender, date_of_birth, created_at, updated_at)",
				batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return executeBatchInsert(ctx, q, "users",
		"(id, username, first_name, last_name, address1, address2, city, country, zip_code, phone_number, gender, date_of_birth, created_at, updated_at)",
		batch)
}

func (s *Seeder) generateProducts(ctx context.Context, q db.Querier) error {
	logging.Info().Int("count", s.cfg.Products).Msg("Generating products")
	batch := make([]string, 0, insertBatchSize)

	for i := 1; i <= s.cfg.Products; i++ {
		ts := s.timestamp()
		price := float64(s.faker.Number(100, 500000)) / 100

		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', %.2f, '%s', '%s')",
			i,
			escapeSingleQuote(s.faker.ProductName()),
			escapeSingleQuote(s.faker.Sentence(8)),
			strings.ToUpper(s.faker.LetterN(3))+fmt.Sprintf("-%04d", i),
			escapeSingleQuote(choose(s.faker, rawCategories)),
			price,
			ts, ts,
		))

		if len(batch) >= insertBatchSize {
			if err := executeBatchInsert(ctx, q, "products",
				"(id, name, description, product_code, category, price, created_at, updated_at)",
				batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return executeBatchInsert(ctx, q, "products",
		"(id, name, description, product_code, category, price, created_at, updated_at)",
		batch)
}

func (s *Seeder) generateCouriers(ctx context.Context, q db.Querier) error {
	logging.Info().Int("count", s.cfg.Couriers).Msg("Generating couriers")
	batch := make([]string, 0, s.cfg.Couriers)

	for i := 1; i <= s.cfg.Couriers; i++ {
		ts := s.timestamp()
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s')",
			i,
			escapeSingleQuote(s.faker.Company()),
			ts, ts,
		))
	}
	return executeBatchInsert(ctx, q, "couriers", "(id, name, created_at, updated_at)", batch)
}

func (s *Seeder) generateRiders(ctx context.Context, q db.Querier) error {
	logging.Info().Int("count", s.cfg.Riders).Msg("Generating riders")
	batch := make([]string, 0, insertBatchSize)

	for i := 1; i <= s.cfg.Riders; i++ {
		ts := s.timestamp()

		// A few riders reference a courier that no longer exists; the
		// inner merge in the pipeline drops them.
		courierID := s.faker.Number(1, s.cfg.Couriers)
		if s.faker.Number(1, 100) <= 3 {
			courierID = s.cfg.Couriers + s.faker.Number(1, 50)
		}

		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', %d, '%s', %d, '%s', '%s', '%s')",
			i,
			escapeSingleQuote(s.faker.FirstName()),
			escapeSingleQuote(s.faker.LastName()),
			courierID,
			choose(s.faker, vehicleTypes),
			s.faker.Number(18, 60),
			escapeSingleQuote(choose(s.faker, rawGenders)),
			ts, ts,
		))

		if len(batch) >= insertBatchSize {
			if err := executeBatchInsert(ctx, q, "riders",
				"(id, first_name, last_name, courier_id, vehicle_type, age, gender, created_at, updated_at)",
				batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return executeBatchInsert(ctx, q, "riders",
		"(id, first_name, last_name, courier_id, vehicle_type, age, gender, created_at, updated_at)",
		batch)
}

func (s *Seeder) generateOrders(ctx context.Context, q db.Querier) error {
	logging.Info().Int("count", s.cfg.Orders).Msg("Generating orders")
	orderBatch := make([]string, 0, insertBatchSize)
	itemBatch := make([]string, 0, insertBatchSize)
	itemID := 0

	for i := 1; i <= s.cfg.Orders; i++ {
		created := s.faker.DateRange(time.Now().AddDate(-2, 0, 0), time.Now())
		delivered := created.AddDate(0, 0, s.faker.Number(1, 14))
		ts := created.Format("2006-01-02 15:04:05")

		orderBatch = append(orderBatch, fmt.Sprintf("(%d, '%s', %d, %d, '%s', '%s', '%s')",
			i,
			fmt.Sprintf("ORD-%06d", i),
			s.faker.Number(1, s.cfg.Users),
			s.faker.Number(1, s.cfg.Riders),
			escapeSingleQuote(s.messyDate(delivered)),
			ts, ts,
		))

		// 1 to 4 line items per order, distinct products per order.
		numItems := s.faker.Number(1, 4)
		firstProduct := s.faker.Number(1, max(1, s.cfg.Products-numItems))
		for j := 0; j < numItems; j++ {
			itemID++
			itemBatch = append(itemBatch, fmt.Sprintf("(%d, %d, %d, %d)",
				itemID, i, firstProduct+j, s.faker.Number(1, 10)))
		}

		if len(orderBatch) >= insertBatchSize {
			if err := executeBatchInsert(ctx, q, "orders",
				"(id, order_number, user_id, delivery_rider_id, delivery_date, created_at, updated_at)",
				orderBatch); err != nil {
				return err
			}
			orderBatch = orderBatch[:0]
		}
		if len(itemBatch) >= insertBatchSize {
			if err := executeBatchInsert(ctx, q, "order_items",
				"(id, order_id, product_id, quantity)", itemBatch); err != nil {
				return err
			}
			itemBatch = itemBatch[:0]
		}
	}

	if err := executeBatchInsert(ctx, q, "orders",
		"(id, order_number, user_id, delivery_rider_id, delivery_date, created_at, updated_at)",
		orderBatch); err != nil {
		return err
	}
	return executeBatchInsert(ctx, q, "order_items",
		"(id, order_id, product_id, quantity)", itemBatch)
}

func executeBatchInsert(ctx context.Context, q db.Querier, table, columns string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(values, ", "))
	_, err := q.Exec(ctx, sql)
	return err
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func choose(f *gofakeit.Faker, options []string) string {
	return options[f.Number(0, len(options)-1)]
}
