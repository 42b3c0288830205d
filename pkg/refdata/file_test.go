package refdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTariffYAML = `
rows:
  - usage_kwh: 200
    usage_charge: 54.06
    network_charge: 25.70
    capacity_charge: 9.10
    eei_charge: -5.00
  - usage_kwh: 400
    usage_charge: 108.12
    network_charge: 51.40
    capacity_charge: 18.20
    kwtbb_charge: 2.84
  - usage_kwh: 600
    usage_charge: 162.18
    network_charge: 77.10
    capacity_charge: 27.30
    kwtbb_charge: 4.27
`

const testCatalogYAML = `
packages:
  - id: res-10x620
    name: 10 x 620W Residential
    panel_qty: 10
    price: 21600
    wattage_w: 620
    type: Residential
    active: true
  - id: res-14x620-special
    name: 14 x 620W Promo
    panel_qty: 14
    price: 19999
    wattage_w: 620
    type: Residential
    active: true
    special: true
`

func writeTestFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	tariffPath := filepath.Join(dir, "tariffs.yaml")
	catalogPath := filepath.Join(dir, "packages.yaml")
	require.NoError(t, os.WriteFile(tariffPath, []byte(testTariffYAML), 0644))
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogYAML), 0644))
	return tariffPath, catalogPath
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	tariffPath, catalogPath := writeTestFiles(t)

	f := NewFileSource(tariffPath, catalogPath)
	require.NoError(t, f.Init(ctx))
	defer f.Close()

	t.Run("Tariffs", func(t *testing.T) {
		rows, err := f.Tariffs(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.InDelta(t, 200, rows[0].UsageKWH, 0.001)
		assert.InDelta(t, 54.06, rows[0].UsageCharge, 0.001)
		assert.InDelta(t, -5.00, rows[0].EEICharge, 0.001)
		assert.InDelta(t, 4.27, rows[2].KWTBBCharge, 0.001)
	})

	t.Run("Packages", func(t *testing.T) {
		bundle, err := f.Packages(ctx)
		require.NoError(t, err)
		require.Len(t, bundle, 2)
		assert.Equal(t, "res-10x620", bundle[0].ID)
		assert.Equal(t, 10, bundle[0].PanelQty)
		assert.True(t, bundle[1].Special)
	})

	t.Run("Snapshot Is A Copy", func(t *testing.T) {
		rows, err := f.Tariffs(ctx)
		require.NoError(t, err)
		rows[0].UsageCharge = -1

		again, err := f.Tariffs(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 54.06, again[0].UsageCharge, 0.001)
	})
}

func TestFileSourceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing File", func(t *testing.T) {
		f := NewFileSource("does-not-exist.yaml", "also-missing.yaml")
		assert.Error(t, f.Init(ctx))
	})

	t.Run("Empty Table", func(t *testing.T) {
		dir := t.TempDir()
		tariffPath := filepath.Join(dir, "tariffs.yaml")
		catalogPath := filepath.Join(dir, "packages.yaml")
		require.NoError(t, os.WriteFile(tariffPath, []byte("rows: []\n"), 0644))
		require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogYAML), 0644))

		f := NewFileSource(tariffPath, catalogPath)
		assert.Error(t, f.Init(ctx))
	})

	t.Run("Used Before Init", func(t *testing.T) {
		f := NewFileSource("a.yaml", "b.yaml")
		_, err := f.Tariffs(ctx)
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}
