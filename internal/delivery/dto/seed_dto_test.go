package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedTime(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-01-20"`:                time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		`"2024-01-20T10:15:00"`:       time.Date(2024, 1, 20, 10, 15, 0, 0, time.UTC),
		`"2024-01-20 10:15:00"`:       time.Date(2024, 1, 20, 10, 15, 0, 0, time.UTC),
		`"2024-01-20T10:15:00Z"`:      time.Date(2024, 1, 20, 10, 15, 0, 0, time.UTC),
		`"2024-01-20T10:15:00+05:30"`: time.Date(2024, 1, 20, 4, 45, 0, 0, time.UTC),
		`1705829400000`:               time.Date(2024, 1, 21, 9, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var st SeedTime
		require.NoError(t, json.Unmarshal([]byte(raw), &st), raw)
		assert.True(t, want.Equal(st.Time), "%s parsed as %s", raw, st.Time)
		assert.Empty(t, st.Unparsed, raw)
	}
}

func TestSeedTime_EmptyAndUnparsed(t *testing.T) {
	var doctor SeedDoctor
	require.NoError(t, json.Unmarshal([]byte(`{"name": "A", "createdAt": null}`), &doctor))
	assert.True(t, doctor.CreatedAt.IsZero())

	var patient SeedPatient
	require.NoError(t, json.Unmarshal([]byte(`{"name": "B", "createdAt": "last tuesday"}`), &patient))
	assert.True(t, patient.CreatedAt.IsZero())
	assert.Equal(t, "last tuesday", patient.CreatedAt.Unparsed)
	assert.Equal(t, "B", patient.Name)
}
