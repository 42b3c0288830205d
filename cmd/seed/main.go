// Command seed loads the built-in reference data into a Firestore emulator
// or a SQLite file so the other binaries have something to read in dev.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

func main() {
	emulator := flag.String("firestore-emulator", "127.0.0.1:8087", "Firestore emulator host to seed ('' to skip)")
	projectID := flag.String("firestore-project-id", "solarquote-dev", "Project ID to seed under")
	sqlitePath := flag.String("sqlite-path", "", "SQLite file to seed ('' to skip)")
	flag.Parse()

	ctx := context.Background()
	rows := refdata.DefaultTariffTable()
	catalog := refdata.DefaultCatalog()

	log.Ctx(ctx).InfoContext(ctx, "seeding reference data",
		"tariffRows", len(rows), "packages", len(catalog))

	if *emulator != "" {
		if err := seedFirestore(ctx, *emulator, *projectID, rows, catalog); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "firestore seed failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded firestore emulator %s (project %s)\n", *emulator, *projectID)
	}

	if *sqlitePath != "" {
		if err := seedSQLite(ctx, *sqlitePath, rows, catalog); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "sqlite seed failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded sqlite file %s\n", *sqlitePath)
	}
}

func seedFirestore(ctx context.Context, emulator, projectID string, rows []types.TariffRow, catalog []types.PackageOption) error {
	// the firestore client picks the emulator up from the environment
	os.Setenv("FIRESTORE_EMULATOR_HOST", emulator)

	src := refdata.NewFirestoreSource(projectID, "")
	if err := src.Init(ctx); err != nil {
		return err
	}
	defer src.Close()

	for _, row := range rows {
		if err := src.SeedTariffRow(ctx, row); err != nil {
			return fmt.Errorf("seeding tariff row %.0f: %w", row.UsageKWH, err)
		}
	}
	for _, pkg := range catalog {
		if err := src.SeedPackage(ctx, pkg); err != nil {
			return fmt.Errorf("seeding package %s: %w", pkg.ID, err)
		}
	}
	return nil
}

func seedSQLite(ctx context.Context, path string, rows []types.TariffRow, catalog []types.PackageOption) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, refdata.Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for _, row := range rows {
		if _, err := db.ExecContext(ctx, `
			INSERT OR REPLACE INTO tariff_rows
				(usage_kwh, usage_charge, network_charge, capacity_charge,
				 retail_charge, eei_charge, sst_charge, kwtbb_charge, fuel_adjustment)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.UsageKWH, row.UsageCharge, row.NetworkCharge, row.CapacityCharge,
			row.RetailCharge, row.EEICharge, row.SSTCharge, row.KWTBBCharge,
			row.FuelAdjustment); err != nil {
			return fmt.Errorf("inserting tariff row %.0f: %w", row.UsageKWH, err)
		}
	}
	for _, pkg := range catalog {
		if _, err := db.ExecContext(ctx, `
			INSERT OR REPLACE INTO packages
				(id, name, panel_qty, price, wattage_w, type, active, special)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pkg.ID, pkg.Name, pkg.PanelQty, pkg.Price, pkg.WattageW, pkg.Type,
			pkg.Active, pkg.Special); err != nil {
			return fmt.Errorf("inserting package %s: %w", pkg.ID, err)
		}
	}
	return nil
}
