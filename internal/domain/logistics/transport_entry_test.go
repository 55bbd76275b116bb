package logistics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestTransportEntry_Total(t *testing.T) {
	entry, err := NewTransportEntry("t1", "4", "FastTrack Freight", d(450), d(50), d(50), d(30), time.Now())
	require.NoError(t, err)

	assert.True(t, entry.Total().Equal(d(580)))
}

func TestNewTransportEntry_Validation(t *testing.T) {
	_, err := NewTransportEntry("t", "", "X", d(1), d(1), d(1), d(1), time.Now())
	assert.Error(t, err)

	_, err = NewTransportEntry("t", "o", "X", d(-1), d(1), d(1), d(1), time.Now())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Zero(t, s.Count)
		assert.True(t, s.TotalCost.IsZero())
		assert.True(t, s.AverageCost.IsZero())
	})

	t.Run("rounds average", func(t *testing.T) {
		a, _ := NewTransportEntry("a", "o", "X", d(450), d(50), d(50), d(30), time.Now())
		b, _ := NewTransportEntry("b", "o", "Y", d(100), d(0), d(0), d(1), time.Now())

		s := Summarize([]TransportEntry{a, b})

		assert.Equal(t, 2, s.Count)
		assert.True(t, s.TotalCost.Equal(d(681)))
		assert.True(t, s.AverageCost.Equal(d(341)), s.AverageCost.String())
	})
}
