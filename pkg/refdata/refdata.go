// Package refdata supplies the two read-only reference datasets the
// calculation engine depends on: the tariff table and the package catalog.
// Sources hand out immutable snapshots; the engine never writes back.
package refdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

var (
	// ErrNotLoaded is returned when a source is used before Init.
	ErrNotLoaded = errors.New("reference data not loaded")
)

// Source provides read-only snapshots of the reference data. Tariffs must
// return rows sorted ascending by usage with non-decreasing cost; that
// ordering is a precondition the engine relies on but does not enforce.
type Source interface {
	Tariffs(ctx context.Context) ([]types.TariffRow, error)
	Packages(ctx context.Context) ([]types.PackageOption, error)

	// Lifecycle
	Close() error
}

// Configured sets up the reference-data source based on flags.
func Configured() Source {
	provider := lflag.String("refdata-provider", "static", "Reference data source to use (available: static, file, sqlite, firestore)")

	var p struct{ Source }

	file := configuredFile()
	sqlite := configuredSQLite()
	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "static":
			p.Source = NewStaticSource(DefaultTariffTable(), DefaultCatalog())
		case "file":
			if err := file.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("file refdata init failed: %v", err))
			}
			p.Source = file
		case "sqlite":
			if err := sqlite.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("sqlite refdata init failed: %v", err))
			}
			p.Source = sqlite
		case "firestore":
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore refdata init failed: %v", err))
			}
			p.Source = fs
		default:
			panic(fmt.Sprintf("unknown refdata provider: %s", *provider))
		}
	})

	return &p
}
