package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal_AcceptsBothEncodings(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-31"`), &d))
	assert.Equal(t, "2025-01-31", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2025-01-31T15:04:05Z"`), &d))
	assert.Equal(t, "2025-01-31", d.String())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"31/01/2025"`), &d))
}

func TestDateMarshal(t *testing.T) {
	b, err := json.Marshal(NewDate(2025, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-31"`, string(b))
}

func TestSameCalendarDay(t *testing.T) {
	bangkok := time.FixedZone("UTC+7", 7*3600)
	a := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 2, 9, 0, 0, 0, bangkok)

	assert.True(t, SameCalendarDay(a, b, bangkok), "both are June 2nd in UTC+7")
	assert.False(t, SameCalendarDay(a, b, time.UTC), "in UTC they straddle midnight")
}
