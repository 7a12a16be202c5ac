// Package main provides a CLI tool for preparing the database: schema,
// numbering configurations and optional demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"tripdesk/internal/core/id"
	coresequence "tripdesk/internal/core/sequence"
	"tripdesk/internal/infrastructure/sequence"
	"tripdesk/internal/infrastructure/storage/postgres"
	"tripdesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := applySchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if err := provisionSequences(ctx, pool, log); err != nil {
		log.Fatalw("failed to provision numbering", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// schemaStatements creates all tables if they do not exist yet. Statements
// are idempotent, so the tool is safe to re-run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sequence_configs (
		type           TEXT PRIMARY KEY,
		prefix         TEXT NOT NULL,
		format         TEXT NOT NULL,
		counter        BIGINT NOT NULL DEFAULT 0,
		reset_interval TEXT NOT NULL,
		last_reset     TIMESTAMPTZ NOT NULL DEFAULT '0001-01-01T00:00:00Z'
	)`,

	`CREATE TABLE IF NOT EXISTS cat_clients (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT,
		phone         TEXT,
		address       TEXT,
		passport_no   TEXT,
		comment       TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS cat_suppliers (
		id             UUID PRIMARY KEY,
		code           TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		type           TEXT NOT NULL,
		contact_person TEXT,
		email          TEXT,
		phone          TEXT,
		address        TEXT,
		iban           TEXT,
		comment        TEXT,
		deletion_mark  BOOLEAN NOT NULL DEFAULT FALSE,
		version        INT NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS cat_articles (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		kind          TEXT NOT NULL,
		supplier_id   UUID NOT NULL REFERENCES cat_suppliers(id),
		price         NUMERIC(15,2) NOT NULL DEFAULT 0,
		currency      TEXT NOT NULL DEFAULT 'EUR',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS art_flight_details (
		article_id     UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		airline        TEXT NOT NULL DEFAULT '',
		flight_no      TEXT NOT NULL DEFAULT '',
		departure_city TEXT NOT NULL DEFAULT '',
		arrival_city   TEXT NOT NULL DEFAULT '',
		cabin_class    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS art_hotel_details (
		article_id UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		city       TEXT NOT NULL DEFAULT '',
		stars      INT NOT NULL DEFAULT 0,
		board      TEXT NOT NULL DEFAULT '',
		room_type  TEXT NOT NULL DEFAULT '',
		nights     INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS art_tour_details (
		article_id  UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		destination TEXT NOT NULL DEFAULT '',
		days        INT NOT NULL DEFAULT 0,
		departs_at  TIMESTAMPTZ,
		operator    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS art_transfer_details (
		article_id    UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		from_location TEXT NOT NULL DEFAULT '',
		to_location   TEXT NOT NULL DEFAULT '',
		vehicle_type  TEXT NOT NULL DEFAULT '',
		seats         INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS art_excursion_details (
		article_id     UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		location       TEXT NOT NULL DEFAULT '',
		duration_hours INT NOT NULL DEFAULT 0,
		guided         BOOLEAN NOT NULL DEFAULT FALSE,
		language       TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS art_insurance_details (
		article_id    UUID PRIMARY KEY REFERENCES cat_articles(id) ON DELETE CASCADE,
		insurer       TEXT NOT NULL DEFAULT '',
		coverage_type TEXT NOT NULL DEFAULT '',
		coverage_days INT NOT NULL DEFAULT 0,
		policy_terms  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_orders (
		id            UUID PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		date          TIMESTAMPTZ NOT NULL,
		client_id     UUID NOT NULL REFERENCES cat_clients(id),
		status        TEXT NOT NULL,
		total_amount  NUMERIC(15,2) NOT NULL DEFAULT 0,
		currency      TEXT NOT NULL DEFAULT 'EUR',
		comment       TEXT NOT NULL DEFAULT '',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by    TEXT NOT NULL DEFAULT '',
		updated_by    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_order_lines (
		id         UUID PRIMARY KEY,
		order_id   UUID NOT NULL REFERENCES doc_orders(id) ON DELETE CASCADE,
		article_id UUID NOT NULL REFERENCES cat_articles(id),
		quantity   INT NOT NULL,
		unit_price NUMERIC(15,2) NOT NULL,
		amount     NUMERIC(15,2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS doc_invoices (
		id              UUID PRIMARY KEY,
		number          TEXT NOT NULL UNIQUE,
		date            TIMESTAMPTZ NOT NULL,
		order_id        UUID NOT NULL UNIQUE REFERENCES doc_orders(id) ON DELETE CASCADE,
		status          TEXT NOT NULL,
		amount_excl_tax NUMERIC(15,2) NOT NULL DEFAULT 0,
		tax_amount      NUMERIC(15,2) NOT NULL DEFAULT 0,
		amount_incl_tax NUMERIC(15,2) NOT NULL DEFAULT 0,
		currency        TEXT NOT NULL DEFAULT 'EUR',
		comment         TEXT NOT NULL DEFAULT '',
		deletion_mark   BOOLEAN NOT NULL DEFAULT FALSE,
		version         INT NOT NULL DEFAULT 1,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by      TEXT NOT NULL DEFAULT '',
		updated_by      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_payment_vouchers (
		id            UUID PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		date          TIMESTAMPTZ NOT NULL,
		invoice_id    UUID NOT NULL REFERENCES doc_invoices(id),
		amount        NUMERIC(15,2) NOT NULL,
		currency      TEXT NOT NULL DEFAULT 'EUR',
		method        TEXT NOT NULL,
		reference     TEXT NOT NULL DEFAULT '',
		comment       TEXT NOT NULL DEFAULT '',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by    TEXT NOT NULL DEFAULT '',
		updated_by    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_order_lines_order ON doc_order_lines (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_payment_vouchers_invoice ON doc_payment_vouchers (invoice_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cat_articles_supplier ON cat_articles (supplier_id)`,
}

func applySchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

// provisionSequences inserts the numbering configuration for every document
// type. Existing rows keep their counters.
func provisionSequences(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)
	sequences := sequence.New(txManager)

	configs := []coresequence.Config{
		{Type: coresequence.DocumentTypeInvoice, Prefix: "INV", Format: coresequence.DefaultFormat, ResetInterval: coresequence.ResetYearly},
		{Type: coresequence.DocumentTypePaymentVoucher, Prefix: "PV", Format: "{PREFIX}-{YYYY}{MM}-{SEQ}", ResetInterval: coresequence.ResetMonthly},
		{Type: coresequence.DocumentTypeOrder, Prefix: "ORD", Format: coresequence.DefaultFormat, ResetInterval: coresequence.ResetYearly},
		{Type: coresequence.DocumentTypeClient, Prefix: "CLI", Format: "{PREFIX}-{SEQ}", ResetInterval: coresequence.ResetNever},
		{Type: coresequence.DocumentTypeSupplier, Prefix: "SUP", Format: "{PREFIX}-{SEQ}", ResetInterval: coresequence.ResetNever},
		{Type: coresequence.DocumentTypeArticle, Prefix: "ART", Format: "{PREFIX}-{SEQ}", ResetInterval: coresequence.ResetNever},
	}

	for _, cfg := range configs {
		if err := sequences.Provision(ctx, cfg); err != nil {
			return fmt.Errorf("provision %s: %w", cfg.Type, err)
		}
		log.Infow("numbering provisioned", "type", cfg.Type, "prefix", cfg.Prefix)
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	supplierID := id.New()
	tag, err := pool.Exec(ctx, `
		INSERT INTO cat_suppliers (id, code, name, type, email, version, deletion_mark)
		VALUES ($1, 'SUP-0001', 'Sunway Tours', 'tour_operator', 'booking@sunway.example', 1, false)
		ON CONFLICT (code) DO NOTHING
	`, supplierID)
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if err := pool.QueryRow(ctx,
			`SELECT id FROM cat_suppliers WHERE code = 'SUP-0001'`,
		).Scan(&supplierID); err != nil {
			return fmt.Errorf("fetch existing supplier: %w", err)
		}
	}

	clientID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_clients (id, code, name, first_name, last_name, email, version, deletion_mark)
		VALUES ($1, 'CLI-0001', 'Doe John', 'John', 'Doe', 'john.doe@example.com', 1, false)
		ON CONFLICT (code) DO NOTHING
	`, clientID)
	if err != nil {
		return fmt.Errorf("seed client: %w", err)
	}

	articles := []struct {
		code  string
		name  string
		kind  string
		price decimal.Decimal
	}{
		{"ART-0001", "Lisbon city break, 4 nights", "tour", decimal.NewFromInt(890)},
		{"ART-0002", "Airport transfer, Lisbon", "transfer", decimal.NewFromInt(45)},
		{"ART-0003", "Annual travel insurance", "insurance", decimal.NewFromInt(120)},
	}

	for _, a := range articles {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_articles (id, code, name, kind, supplier_id, price, currency, version, deletion_mark)
			VALUES ($1, $2, $3, $4, $5, $6, 'EUR', 1, false)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), a.code, a.name, a.kind, supplierID, a.price)
		if err != nil {
			log.Warnw("failed to seed article", "code", a.code, "error", err)
		}
	}

	log.Info("demo data seeded")
	return nil
}
