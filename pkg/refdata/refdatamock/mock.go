package refdatamock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// MockSource is a testify mock of refdata.Source.
type MockSource struct {
	mock.Mock
}

var _ refdata.Source = (*MockSource)(nil)

func (m *MockSource) Tariffs(ctx context.Context) ([]types.TariffRow, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		rows, _ := args.Get(0).([]types.TariffRow)
		return rows, args.Error(1)
	}
	return nil, nil
}

func (m *MockSource) Packages(ctx context.Context) ([]types.PackageOption, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		bundle, _ := args.Get(0).([]types.PackageOption)
		return bundle, args.Error(1)
	}
	return nil, nil
}

func (m *MockSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
