package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

func TestSessionStore(t *testing.T) {
	t.Run("Baseline Set Once", func(t *testing.T) {
		st := newSessionStore(time.Hour)
		sess := st.get("")

		first := st.captureBaseline(sess.ID, types.QuoteResult{MonthlySavings: 100})
		require.NotNil(t, first)
		assert.Equal(t, 100.0, first.MonthlySavings)

		second := st.captureBaseline(sess.ID, types.QuoteResult{MonthlySavings: 250})
		require.NotNil(t, second)
		assert.Equal(t, 100.0, second.MonthlySavings)
	})

	t.Run("Stored Baseline Is A Deep Copy", func(t *testing.T) {
		st := newSessionStore(time.Hour)
		sess := st.get("")

		cost := 30000.0
		result := types.QuoteResult{
			MonthlySavings:  100,
			FinalSystemCost: &cost,
			SelectedPackage: &types.PackageOption{ID: "res-14-620", Price: 30000},
			BillComparison: types.BillComparison{
				Items: []types.BillComparisonItem{{Component: "usage", Delta: 50}},
			},
			Charts: types.Charts{
				Load: []types.ChartPoint{{Hour: 12, KWH: 1.5}},
			},
		}
		st.captureBaseline(sess.ID, result)

		// mutate everything the response value still references
		result.MonthlySavings = 999
		*result.FinalSystemCost = 1
		result.SelectedPackage.ID = "changed"
		result.BillComparison.Items[0].Delta = -1
		result.Charts.Load[0].KWH = 0

		baseline := st.captureBaseline(sess.ID, types.QuoteResult{})
		require.NotNil(t, baseline)
		assert.Equal(t, 100.0, baseline.MonthlySavings)
		require.NotNil(t, baseline.FinalSystemCost)
		assert.Equal(t, 30000.0, *baseline.FinalSystemCost)
		assert.Equal(t, "res-14-620", baseline.SelectedPackage.ID)
		assert.Equal(t, 50.0, baseline.BillComparison.Items[0].Delta)
		assert.Equal(t, 1.5, baseline.Charts.Load[0].KWH)

		// the returned baseline is itself a copy of the stored one
		baseline.MonthlySavings = -5
		again := st.captureBaseline(sess.ID, types.QuoteResult{})
		require.NotNil(t, again)
		assert.Equal(t, 100.0, again.MonthlySavings)
	})

	t.Run("Unknown ID Creates Fresh Session", func(t *testing.T) {
		st := newSessionStore(time.Hour)
		sess := st.get("nope")
		assert.NotEqual(t, "nope", sess.ID)
		assert.NotEmpty(t, sess.ID)
	})

	t.Run("Expired Session Is Pruned", func(t *testing.T) {
		st := newSessionStore(time.Minute)
		now := time.Now()
		st.now = func() time.Time { return now }

		sess := st.get("")
		st.captureBaseline(sess.ID, types.QuoteResult{MonthlySavings: 50})

		now = now.Add(2 * time.Minute)
		replacement := st.get(sess.ID)
		assert.NotEqual(t, sess.ID, replacement.ID)
		assert.Nil(t, replacement.Baseline)
	})

	t.Run("Access Extends Lifetime", func(t *testing.T) {
		st := newSessionStore(time.Minute)
		now := time.Now()
		st.now = func() time.Time { return now }

		sess := st.get("")
		now = now.Add(45 * time.Second)
		require.Equal(t, sess.ID, st.get(sess.ID).ID)

		now = now.Add(45 * time.Second)
		assert.Equal(t, sess.ID, st.get(sess.ID).ID)
	})
}
