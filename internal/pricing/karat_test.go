package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
)

func TestScaleKaratTableFrom21(t *testing.T) {
	table, err := ScaleKaratTable(Karat21, domain.CurrencyAmount{Usd: 65.50, Syp: 85000})
	require.NoError(t, err)

	assert.InDelta(t, 56.14, table[Karat18].Usd, 0.01)
	assert.InDelta(t, 65.50, table[Karat21].Usd, 0.001)
	assert.InDelta(t, 74.86, table[Karat24].Usd, 0.01)

	assert.InDelta(t, 72857.14, table[Karat18].Syp, 0.01)
	assert.InDelta(t, 85000, table[Karat21].Syp, 0.001)
	assert.InDelta(t, 97142.86, table[Karat24].Syp, 0.01)
}

func TestScaleKaratTableNormalizesSeedKarat(t *testing.T) {
	// seeding from 18 or 24 must land on the same table as seeding from 21
	base, err := ScaleKaratTable(Karat21, domain.CurrencyAmount{Usd: 65.50, Syp: 85000})
	require.NoError(t, err)

	from18, err := ScaleKaratTable(Karat18, base[Karat18])
	require.NoError(t, err)
	from24, err := ScaleKaratTable(Karat24, base[Karat24])
	require.NoError(t, err)

	for _, k := range []string{Karat18, Karat21, Karat24} {
		assert.InDelta(t, base[k].Usd, from18[k].Usd, 0.02, "karat %s via 18 seed", k)
		assert.InDelta(t, base[k].Usd, from24[k].Usd, 0.02, "karat %s via 24 seed", k)
	}
}

func TestScaleKaratTableSelfConsistent(t *testing.T) {
	// rescaling the derived 21 price reproduces the table exactly
	table, err := ScaleKaratTable(Karat21, domain.CurrencyAmount{Usd: 123.45, Syp: 654321})
	require.NoError(t, err)

	again, err := ScaleKaratTable(Karat21, table[Karat21])
	require.NoError(t, err)
	assert.Equal(t, table, again)
}

func TestScaleKaratTableCrossKaratRatio(t *testing.T) {
	table, err := ScaleKaratTable(Karat21, domain.CurrencyAmount{Usd: 80, Syp: 100000})
	require.NoError(t, err)

	assert.InDelta(t, 18.0/24.0, table[Karat18].Usd/table[Karat24].Usd, 0.001)
	assert.InDelta(t, 18.0/24.0, table[Karat18].Syp/table[Karat24].Syp, 0.001)
}

func TestScaleKaratTableUnknownKarat(t *testing.T) {
	_, err := ScaleKaratTable("22", domain.CurrencyAmount{Usd: 10, Syp: 10})
	assert.ErrorIs(t, err, ErrUnknownKarat)
}

func TestRoundCentsHalfUp(t *testing.T) {
	assert.Equal(t, 1.13, RoundCents(1.125))
	assert.Equal(t, 1.0, RoundCents(1.004))
	assert.Equal(t, 56.14, RoundCents(56.142857))
	assert.Equal(t, 0.0, RoundCents(0))
}
