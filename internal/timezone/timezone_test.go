package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	SetDefault("America/Sao_Paulo")
	t.Cleanup(func() { SetDefault(fallbackTimezone) })

	assert.Equal(t, "America/Sao_Paulo", Location("").String())
	assert.Equal(t, "America/Sao_Paulo", Location("Not/AZone").String())
	assert.Equal(t, "Europe/Berlin", Location("Europe/Berlin").String())
}

func TestSetDefaultIgnoresInvalid(t *testing.T) {
	SetDefault("Not/AZone")
	assert.Equal(t, fallbackTimezone, Default())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-16", "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, d.Weekday())
	assert.Equal(t, 0, d.Hour())

	_, err = ParseDate("16/10/2026", "Europe/Berlin")
	assert.Error(t, err)
}
