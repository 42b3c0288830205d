package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// Firestore document layout: each row/package document carries the queryable
// sort key plus a "json" field with the full encoded record.
const (
	tariffCollection  = "tariffRows"
	packageCollection = "packages"
)

// FirestoreSource reads the reference data from Google Cloud Firestore.
type FirestoreSource struct {
	client    *firestore.Client
	projectID string
	database  string
}

// NewFirestoreSource returns an uninitialized source for the given project
// and database. Empty values mean autodetect. Call Init before use.
func NewFirestoreSource(projectID, database string) *FirestoreSource {
	return &FirestoreSource{projectID: projectID, database: database}
}

// configuredFirestore sets up the Firestore source, registering its flags.
func configuredFirestore() *FirestoreSource {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreSource{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how the firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Init initializes the Firestore client. This must be called before using
// the source.
func (f *FirestoreSource) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreSource) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// Tariffs reads the full tariff table, ordered ascending by usage.
func (f *FirestoreSource) Tariffs(ctx context.Context) ([]types.TariffRow, error) {
	if f.client == nil {
		return nil, ErrNotLoaded
	}
	iter := f.client.Collection(tariffCollection).OrderBy("usageKWH", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []types.TariffRow
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, nil
			}
			return nil, fmt.Errorf("iterating tariff rows: %w", err)
		}
		var r types.TariffRow
		if err := decodeJSONDoc(doc.Data(), &r); err != nil {
			return nil, fmt.Errorf("decoding tariff row %s: %w", doc.Ref.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Packages reads the full package catalog.
func (f *FirestoreSource) Packages(ctx context.Context) ([]types.PackageOption, error) {
	if f.client == nil {
		return nil, ErrNotLoaded
	}
	iter := f.client.Collection(packageCollection).Documents(ctx)
	defer iter.Stop()

	var out []types.PackageOption
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, nil
			}
			return nil, fmt.Errorf("iterating packages: %w", err)
		}
		var p types.PackageOption
		if err := decodeJSONDoc(doc.Data(), &p); err != nil {
			return nil, fmt.Errorf("decoding package %s: %w", doc.Ref.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeJSONDoc(data map[string]any, v any) error {
	raw, ok := data["json"]
	if !ok {
		return fmt.Errorf("document missing 'json' field")
	}
	jsonStr, ok := raw.(string)
	if !ok {
		return fmt.Errorf("document 'json' field is not a string")
	}
	return json.Unmarshal([]byte(jsonStr), v)
}

// SeedTariffRow writes one tariff row document. Used by the seed tool and
// emulator-backed tests.
func (f *FirestoreSource) SeedTariffRow(ctx context.Context, row types.TariffRow) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	docID := fmt.Sprintf("row-%06.0f", row.UsageKWH)
	_, err = f.client.Collection(tariffCollection).Doc(docID).Set(ctx, map[string]any{
		"usageKWH": row.UsageKWH,
		"json":     string(raw),
	})
	return err
}

// SeedPackage writes one package document. Used by the seed tool and
// emulator-backed tests.
func (f *FirestoreSource) SeedPackage(ctx context.Context, pkg types.PackageOption) error {
	raw, err := json.Marshal(pkg)
	if err != nil {
		return err
	}
	_, err = f.client.Collection(packageCollection).Doc(pkg.ID).Set(ctx, map[string]any{
		"panelQty": pkg.PanelQty,
		"json":     string(raw),
	})
	return err
}
