package refdata

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/levenlabs/go-lflag"
	"gopkg.in/yaml.v3"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// FileSource loads the tariff table and package catalog from YAML documents
// on disk. The files are read once at Init; the snapshot never changes for
// the lifetime of the process.
type FileSource struct {
	tariffPath  string
	catalogPath string

	mu     sync.RWMutex
	rows   []types.TariffRow
	bundle []types.PackageOption
	loaded bool
}

type tariffDocument struct {
	Rows []types.TariffRow `yaml:"rows"`
}

type catalogDocument struct {
	Packages []types.PackageOption `yaml:"packages"`
}

// configuredFile sets up the file source, registering its flags.
func configuredFile() *FileSource {
	tariffPath := lflag.String("refdata-tariff-file", "tariffs.yaml", "Path to the tariff table YAML file")
	catalogPath := lflag.String("refdata-catalog-file", "packages.yaml", "Path to the package catalog YAML file")

	f := &FileSource{}
	lflag.Do(func() {
		f.tariffPath = *tariffPath
		f.catalogPath = *catalogPath
	})
	return f
}

// NewFileSource creates a FileSource for explicit paths, mainly for the CLI
// and tests. Init must still be called before use.
func NewFileSource(tariffPath, catalogPath string) *FileSource {
	return &FileSource{tariffPath: tariffPath, catalogPath: catalogPath}
}

// Init reads and parses both files.
func (f *FileSource) Init(ctx context.Context) error {
	rows, err := loadTariffFile(f.tariffPath)
	if err != nil {
		return err
	}
	bundle, err := loadCatalogFile(f.catalogPath)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
	f.bundle = bundle
	f.loaded = true
	return nil
}

func loadTariffFile(path string) ([]types.TariffRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tariff file %s: %w", path, err)
	}
	var doc tariffDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing tariff file %s: %w", path, err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("tariff file %s contains no rows", path)
	}
	return doc.Rows, nil
}

func loadCatalogFile(path string) ([]types.PackageOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return doc.Packages, nil
}

// Tariffs returns a copy of the loaded tariff table.
func (f *FileSource) Tariffs(ctx context.Context) ([]types.TariffRow, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.loaded {
		return nil, ErrNotLoaded
	}
	rows := make([]types.TariffRow, len(f.rows))
	copy(rows, f.rows)
	return rows, nil
}

// Packages returns a copy of the loaded package catalog.
func (f *FileSource) Packages(ctx context.Context) ([]types.PackageOption, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.loaded {
		return nil, ErrNotLoaded
	}
	bundle := make([]types.PackageOption, len(f.bundle))
	copy(bundle, f.bundle)
	return bundle, nil
}

// Close implements Source. The file source holds no resources.
func (f *FileSource) Close() error {
	return nil
}
