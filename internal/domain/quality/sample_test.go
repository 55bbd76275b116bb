package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawMaterialSample_WithStatus(t *testing.T) {
	sample, err := NewRawMaterialSample("rs2", "Copper Foil 0.2mm", "CF-5582", "Global Metal Co", "Sarah Miller", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, sample.Status)

	at := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)
	passed := sample.WithStatus(StatusPass, at)

	assert.Equal(t, StatusPass, passed.Status)
	require.NotNil(t, passed.TestDate)
	assert.Equal(t, at, *passed.TestDate)
	assert.Nil(t, sample.TestDate)
}

func TestNewGovProductSample_RequiresOrderNumber(t *testing.T) {
	_, err := NewGovProductSample("g", "Power Module T-5", "", "", "", "", time.Now())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	raw := []RawMaterialSample{{Status: StatusPass}, {Status: StatusPending}}
	gov := []GovProductSample{{Status: StatusPending}, {Status: StatusFail}}

	s := Summarize(raw, gov)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Pending)
}
