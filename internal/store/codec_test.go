package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID        string    `json:"id,omitempty"`
	JobNumber int       `json:"jobNumber"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

func TestEncodeDecode(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	data, err := Encode(sample{JobNumber: 7, CreatedAt: created})
	require.NoError(t, err)

	assert.NotContains(t, data, "id")
	assert.Equal(t, float64(7), data["jobNumber"])
	assert.Nil(t, data["note"])

	var out sample
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, 7, out.JobNumber)
	assert.True(t, created.Equal(out.CreatedAt))
}

func TestMatchesComparesAcrossNumericTypes(t *testing.T) {
	data := Data{"jobNumber": float64(5), "status": "Open"}

	assert.True(t, Matches(data, nil))
	assert.True(t, Matches(data, Data{"jobNumber": 5}))
	assert.True(t, Matches(data, Data{"jobNumber": int64(5), "status": "Open"}))
	assert.False(t, Matches(data, Data{"jobNumber": 6}))
	assert.False(t, Matches(data, Data{"missing": "x"}))
}
