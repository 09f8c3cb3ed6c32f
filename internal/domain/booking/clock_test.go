package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHM(t *testing.T) {
	m, err := ParseHM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = ParseHM("25:00")
	assert.Error(t, err)

	_, err = ParseHM("0930")
	assert.Error(t, err)
}

func TestFormatHM(t *testing.T) {
	assert.Equal(t, "09:30", FormatHM(570))
	assert.Equal(t, "00:00", FormatHM(0))
	assert.Equal(t, "23:59", FormatHM(23*60+59))
}

func TestEndTimeHM(t *testing.T) {
	end, err := EndTimeHM("09:00", 90)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end)

	end, err = EndTimeHM("23:00", 60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end)

	_, err = EndTimeHM("23:30", 60)
	assert.Error(t, err, "past midnight")

	_, err = EndTimeHM("nope", 30)
	assert.Error(t, err)
}
