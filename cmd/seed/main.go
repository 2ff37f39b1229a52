// Package main provides a CLI tool for creating the schema and seeding
// the database with the chart of accounts and an admin user.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alejoxd70/sactpaper-stationery/internal/config"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/storage/postgres"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema is up to date")

	if err := seedChartOfAccounts(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed chart of accounts", "error", err)
	}

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id          UUID PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL,
		parent_id   UUID REFERENCES accounts(id),
		active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_postings (
		id          UUID PRIMARY KEY,
		account_id  UUID NOT NULL REFERENCES accounts(id),
		invoice_id  UUID,
		user_id     TEXT NOT NULL DEFAULT '',
		date        TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		debit       NUMERIC(14,2) NOT NULL DEFAULT 0,
		credit      NUMERIC(14,2) NOT NULL DEFAULT 0,
		reference   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (debit >= 0 AND credit >= 0),
		CHECK (debit = 0 OR credit = 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_postings_account_date ON ledger_postings (account_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_postings_invoice ON ledger_postings (invoice_id)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		unit_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
		cost        NUMERIC(14,2) NOT NULL DEFAULT 0,
		stock       INTEGER NOT NULL DEFAULT 0,
		min_stock   INTEGER NOT NULL DEFAULT 0,
		active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (stock >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id          UUID PRIMARY KEY,
		product_id  UUID NOT NULL REFERENCES products(id),
		user_id     TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL,
		quantity    INTEGER NOT NULL,
		date        TIMESTAMPTZ NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_date ON inventory_movements (product_id, date)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id              UUID PRIMARY KEY,
		document_type   TEXT NOT NULL,
		document_number TEXT NOT NULL,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		address         TEXT NOT NULL DEFAULT '',
		active          BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (document_type, document_number)
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id             UUID PRIMARY KEY,
		number         TEXT NOT NULL UNIQUE,
		customer_id    UUID REFERENCES customers(id),
		user_id        TEXT NOT NULL DEFAULT '',
		date           TIMESTAMPTZ NOT NULL,
		payment_method TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		subtotal       NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax            NUMERIC(14,2) NOT NULL DEFAULT 0,
		discount       NUMERIC(14,2) NOT NULL DEFAULT 0,
		total          NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices (date)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices (customer_id)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id         UUID PRIMARY KEY,
		invoice_id UUID NOT NULL REFERENCES invoices(id),
		product_id UUID NOT NULL REFERENCES products(id),
		name       TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		unit_price NUMERIC(14,2) NOT NULL,
		unit_cost  NUMERIC(14,2) NOT NULL,
		line_total NUMERIC(14,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL
	)`,
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute DDL: %w", err)
		}
	}
	return nil
}

// accountSeed is one row of the Colombian PUC chart. Parent codes must
// appear earlier in the list.
type accountSeed struct {
	code       string
	name       string
	accType    ledger.AccountType
	parentCode string
}

var pucChart = []accountSeed{
	{"1", "ACTIVO", ledger.TypeAsset, ""},
	{"11", "DISPONIBLE", ledger.TypeAsset, "1"},
	{"1105", "CAJA", ledger.TypeAsset, "11"},
	{"1110", "BANCOS", ledger.TypeAsset, "11"},
	{"13", "DEUDORES", ledger.TypeAsset, "1"},
	{"1305", "CLIENTES", ledger.TypeAsset, "13"},
	{"14", "INVENTARIOS", ledger.TypeAsset, "1"},
	{"1435", "MERCANCIAS NO FABRICADAS POR LA EMPRESA", ledger.TypeAsset, "14"},
	{"2", "PASIVO", ledger.TypeLiability, ""},
	{"23", "CUENTAS POR PAGAR", ledger.TypeLiability, "2"},
	{"2367", "IMPUESTO A LAS VENTAS POR PAGAR", ledger.TypeLiability, "23"},
	{"3", "PATRIMONIO", ledger.TypeEquity, ""},
	{"31", "CAPITAL SOCIAL", ledger.TypeEquity, "3"},
	{"3115", "APORTES SOCIALES", ledger.TypeEquity, "31"},
	{"4", "INGRESOS", ledger.TypeIncome, ""},
	{"41", "OPERACIONALES", ledger.TypeIncome, "4"},
	{"4135", "COMERCIO AL POR MAYOR Y AL POR MENOR", ledger.TypeIncome, "41"},
	{"5", "GASTOS", ledger.TypeExpense, ""},
	{"51", "OPERACIONALES DE ADMINISTRACION", ledger.TypeExpense, "5"},
	{"5105", "GASTOS DE PERSONAL", ledger.TypeExpense, "51"},
	{"5120", "ARRENDAMIENTOS", ledger.TypeExpense, "51"},
	{"5135", "SERVICIOS", ledger.TypeExpense, "51"},
	{"6", "COSTOS DE VENTAS", ledger.TypeCost, ""},
	{"61", "COSTO DE VENTAS Y DE PRESTACION DE SERVICIOS", ledger.TypeCost, "6"},
	{"6135", "COMERCIO AL POR MAYOR Y AL POR MENOR", ledger.TypeCost, "61"},
}

func seedChartOfAccounts(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	// Map code -> ID so children can reference parents already seeded.
	accountIDs := make(map[string]id.ID, len(pucChart))

	for _, seed := range pucChart {
		accountID := id.New()

		var parentID any
		if seed.parentCode != "" {
			parent, ok := accountIDs[seed.parentCode]
			if !ok {
				return fmt.Errorf("account %s references unknown parent %s", seed.code, seed.parentCode)
			}
			parentID = parent
		}

		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO accounts (id, code, name, type, parent_id, active)
			VALUES ($1, $2, $3, $4, $5, true)
			ON CONFLICT (code) DO NOTHING
		`, accountID, seed.code, seed.name, string(seed.accType), parentID)
		if err != nil {
			return fmt.Errorf("insert account %s: %w", seed.code, err)
		}

		if tag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx,
				`SELECT id FROM accounts WHERE code = $1`, seed.code,
			).Scan(&accountID)
			if err != nil {
				return fmt.Errorf("fetch existing account %s: %w", seed.code, err)
			}
		}

		accountIDs[seed.code] = accountID
	}

	log.Infow("chart of accounts seeded", "accounts", len(pucChart))
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@sactpaper.co"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`, adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, active)
		VALUES ($1, $2, 'Administrador', $3, $4, true)
	`, userID, adminEmail, string(passwordHash), auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	products := []struct {
		code     string
		name     string
		category string
		price    string
		cost     string
		stock    int
		minStock int
	}{
		{"PAP-001", "Resma papel carta 75g", "papeleria", "18500.00", "14200.00", 40, 10},
		{"PAP-002", "Cuaderno argollado 100 hojas", "papeleria", "8900.00", "6100.00", 60, 15},
		{"ESC-001", "Boligrafo tinta negra", "escritura", "1500.00", "800.00", 200, 50},
		{"ESC-002", "Lapiz HB", "escritura", "900.00", "450.00", 180, 50},
		{"OFI-001", "Grapadora metalica", "oficina", "15900.00", "10300.00", 12, 4},
		{"OFI-002", "Caja de clips (100 und)", "oficina", "2300.00", "1200.00", 80, 20},
		{"ART-001", "Caja de colores x12", "arte", "12400.00", "8700.00", 25, 8},
	}

	for _, p := range products {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO products (id, code, name, category, unit_price, cost, stock, min_stock, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), p.code, p.name, p.category, p.price, p.cost, p.stock, p.minStock)
		if err != nil {
			log.Warnw("failed to seed product", "code", p.code, "error", err)
		}
	}

	customers := []struct {
		docType   string
		docNumber string
		name      string
		email     string
	}{
		{"CC", "1020304050", "Maria Fernanda Lopez", "mflopez@example.com"},
		{"CC", "79845120", "Carlos Andres Rojas", "carlos.rojas@example.com"},
		{"NIT", "900123456-7", "Colegio San Mateo S.A.S.", "compras@sanmateo.edu.co"},
	}

	for _, c := range customers {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO customers (id, document_type, document_number, name, email, active)
			VALUES ($1, $2, $3, $4, $5, true)
			ON CONFLICT (document_type, document_number) DO NOTHING
		`, id.New(), c.docType, c.docNumber, c.name, c.email)
		if err != nil {
			log.Warnw("failed to seed customer", "document", c.docNumber, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
