package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the labor-ledger store (SQLite).
var Migrations = migrate.NewGroup("laborledger")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_laborledger_accounts",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_accounts (
    id         TEXT PRIMARY KEY,
    type       TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_accounts_type ON laborledger_accounts (type);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS laborledger_accounts`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_transfers",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_transfers (
    id             TEXT PRIMARY KEY,
    date           TEXT NOT NULL DEFAULT (datetime('now')),
    debit_account  TEXT NOT NULL,
    credit_account TEXT NOT NULL,
    value          TEXT NOT NULL DEFAULT '0',
    type           TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_laborledger_transfers_debit ON laborledger_transfers (debit_account);
CREATE INDEX IF NOT EXISTS idx_laborledger_transfers_credit ON laborledger_transfers (credit_account);
CREATE INDEX IF NOT EXISTS idx_laborledger_transfers_type ON laborledger_transfers (type);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS laborledger_transfers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_members",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_members (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    account    TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS laborledger_members`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_companies",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_companies (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL DEFAULT '',
    email                TEXT NOT NULL DEFAULT '',
    means_account        TEXT NOT NULL,
    raw_material_account TEXT NOT NULL,
    work_account         TEXT NOT NULL,
    product_account      TEXT NOT NULL,
    created_at           TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at           TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS laborledger_company_workers (
    company  TEXT NOT NULL,
    member   TEXT NOT NULL,
    added_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (company, member)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS laborledger_company_workers;
DROP TABLE IF EXISTS laborledger_companies;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_social_accounting",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_social_accounting (
    id          TEXT PRIMARY KEY,
    account_psf TEXT NOT NULL,
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS laborledger_social_accounting`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_plans",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_plans (
    id                    TEXT PRIMARY KEY,
    planner               TEXT NOT NULL,
    cost_labour           TEXT NOT NULL DEFAULT '0',
    cost_resource         TEXT NOT NULL DEFAULT '0',
    cost_means            TEXT NOT NULL DEFAULT '0',
    product_name          TEXT NOT NULL DEFAULT '',
    unit                  TEXT NOT NULL DEFAULT '',
    amount                INTEGER NOT NULL DEFAULT 0,
    description           TEXT NOT NULL DEFAULT '',
    timeframe_days        INT NOT NULL DEFAULT 0,
    is_public_service     INTEGER NOT NULL DEFAULT 0,
    approval_date         TEXT,
    rejection_date        TEXT,
    expiration_date       TEXT,
    cooperation           TEXT NOT NULL DEFAULT '',
    requested_cooperation TEXT NOT NULL DEFAULT '',
    hidden                INTEGER NOT NULL DEFAULT 0,
    created_at            TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at            TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_plans_planner ON laborledger_plans (planner);
CREATE INDEX IF NOT EXISTS idx_laborledger_plans_cooperation ON laborledger_plans (cooperation);
CREATE INDEX IF NOT EXISTS idx_laborledger_plans_activity ON laborledger_plans (approval_date, expiration_date);

CREATE TABLE IF NOT EXISTS laborledger_plan_approvals (
    id                TEXT PRIMARY KEY,
    plan              TEXT NOT NULL UNIQUE,
    date              TEXT NOT NULL DEFAULT (datetime('now')),
    transfer_credit_p TEXT NOT NULL,
    transfer_credit_r TEXT NOT NULL,
    transfer_credit_a TEXT NOT NULL
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS laborledger_plan_approvals;
DROP TABLE IF EXISTS laborledger_plans;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_cooperations",
			Version: "20250101000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_cooperations (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    definition TEXT NOT NULL DEFAULT '',
    account    TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS laborledger_coordination_tenures (
    id          TEXT PRIMARY KEY,
    company     TEXT NOT NULL,
    cooperation TEXT NOT NULL,
    start_date  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_tenures_coop ON laborledger_coordination_tenures (cooperation, start_date);

CREATE TABLE IF NOT EXISTS laborledger_coordination_transfer_requests (
    id                TEXT PRIMARY KEY,
    requesting_tenure TEXT NOT NULL,
    candidate         TEXT NOT NULL,
    request_date      TEXT NOT NULL DEFAULT (datetime('now')),
    transfer_date     TEXT
);

CREATE INDEX IF NOT EXISTS idx_laborledger_requests_tenure ON laborledger_coordination_transfer_requests (requesting_tenure);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS laborledger_coordination_transfer_requests;
DROP TABLE IF EXISTS laborledger_coordination_tenures;
DROP TABLE IF EXISTS laborledger_cooperations;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_consumptions",
			Version: "20250101000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_private_consumptions (
    id                       TEXT PRIMARY KEY,
    plan                     TEXT NOT NULL,
    amount                   INTEGER NOT NULL DEFAULT 0,
    transfer_of_consumption  TEXT NOT NULL,
    transfer_of_compensation TEXT NOT NULL DEFAULT '',
    created_at               TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at               TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_private_cons_plan ON laborledger_private_consumptions (plan);

CREATE TABLE IF NOT EXISTS laborledger_productive_consumptions (
    id                       TEXT PRIMARY KEY,
    plan                     TEXT NOT NULL,
    amount                   INTEGER NOT NULL DEFAULT 0,
    type                     TEXT NOT NULL DEFAULT '',
    transfer_of_consumption  TEXT NOT NULL,
    transfer_of_compensation TEXT NOT NULL DEFAULT '',
    created_at               TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at               TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_productive_cons_plan ON laborledger_productive_consumptions (plan);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS laborledger_productive_consumptions;
DROP TABLE IF EXISTS laborledger_private_consumptions;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_laborledger_registered_hours_worked",
			Version: "20250101000009",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS laborledger_registered_hours_worked (
    id                            TEXT PRIMARY KEY,
    company                       TEXT NOT NULL,
    member                        TEXT NOT NULL,
    hours                         TEXT NOT NULL DEFAULT '0',
    transfer_of_work_certificates TEXT NOT NULL,
    transfer_of_taxes             TEXT NOT NULL,
    registered_on                 TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_laborledger_hours_company ON laborledger_registered_hours_worked (company);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS laborledger_registered_hours_worked`)
				return err
			},
		},
	)
}
