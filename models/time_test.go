package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeJSON(t *testing.T) {
	tm := Time(time.Date(2026, 8, 1, 12, 30, 0, 0, time.Local))

	data, err := json.Marshal(tm)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-01 12:30:00"`, string(data))

	var parsed Time
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, tm.Std().Equal(parsed.Std()))
}

func TestTimeUnmarshalNull(t *testing.T) {
	var tm Time
	require.NoError(t, json.Unmarshal([]byte("null"), &tm))
	assert.True(t, tm.Std().IsZero())
}
