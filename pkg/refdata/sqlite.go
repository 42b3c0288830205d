package refdata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/levenlabs/go-lflag"
	_ "modernc.org/sqlite"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// SQLiteSource reads the reference data from a local SQLite database. The
// database is opened read-only; seeding it is the operator's job.
type SQLiteSource struct {
	path string
	db   *sql.DB
}

// configuredSQLite sets up the SQLite source, registering its flags.
func configuredSQLite() *SQLiteSource {
	path := lflag.String("refdata-sqlite-path", "refdata.db", "Path to the reference data SQLite database")

	s := &SQLiteSource{}
	lflag.Do(func() {
		s.path = *path
	})
	return s
}

// NewSQLiteSource creates a SQLiteSource for an explicit path. Init must
// still be called before use.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Init opens the database connection.
func (s *SQLiteSource) Init(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening refdata database %s: %w", s.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging refdata database %s: %w", s.path, err)
	}
	s.db = db
	return nil
}

// Tariffs reads the full tariff table, ordered ascending by usage.
func (s *SQLiteSource) Tariffs(ctx context.Context) ([]types.TariffRow, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	query := `
	SELECT usage_kwh, usage_charge, network_charge, capacity_charge,
	       retail_charge, eei_charge, sst_charge, kwtbb_charge, fuel_adjustment
	FROM tariff_rows
	ORDER BY usage_kwh ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tariff rows: %w", err)
	}
	defer rows.Close()

	var out []types.TariffRow
	for rows.Next() {
		var r types.TariffRow
		if err := rows.Scan(
			&r.UsageKWH, &r.UsageCharge, &r.NetworkCharge, &r.CapacityCharge,
			&r.RetailCharge, &r.EEICharge, &r.SSTCharge, &r.KWTBBCharge, &r.FuelAdjustment,
		); err != nil {
			return nil, fmt.Errorf("scanning tariff row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Packages reads the full package catalog.
func (s *SQLiteSource) Packages(ctx context.Context) ([]types.PackageOption, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	query := `
	SELECT id, name, panel_qty, price, wattage_w, type, active, special
	FROM packages
	ORDER BY panel_qty ASC, price ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying packages: %w", err)
	}
	defer rows.Close()

	var out []types.PackageOption
	for rows.Next() {
		var p types.PackageOption
		if err := rows.Scan(
			&p.ID, &p.Name, &p.PanelQty, &p.Price, &p.WattageW, &p.Type, &p.Active, &p.Special,
		); err != nil {
			return nil, fmt.Errorf("scanning package: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Schema is the expected layout of the reference database. Exposed so the
// seed tool and tests can create it.
const Schema = `
CREATE TABLE IF NOT EXISTS tariff_rows (
	usage_kwh REAL PRIMARY KEY,
	usage_charge REAL NOT NULL,
	network_charge REAL NOT NULL DEFAULT 0,
	capacity_charge REAL NOT NULL DEFAULT 0,
	retail_charge REAL NOT NULL DEFAULT 0,
	eei_charge REAL NOT NULL DEFAULT 0,
	sst_charge REAL NOT NULL DEFAULT 0,
	kwtbb_charge REAL NOT NULL DEFAULT 0,
	fuel_adjustment REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS packages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	panel_qty INTEGER NOT NULL,
	price REAL NOT NULL,
	wattage_w INTEGER NOT NULL,
	type TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	special INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_packages_panel_qty ON packages(panel_qty);
`
