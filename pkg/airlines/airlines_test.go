package airlines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Ryanair", Name("FR"))
	assert.Equal(t, "TAP Air Portugal", Name("TP"))
	// unknown codes pass through
	assert.Equal(t, "Z9", Name("Z9"))
}

func TestDisplayAirport(t *testing.T) {
	assert.Equal(t, "Madrid (MAD)", DisplayAirport("MAD"))
	assert.Equal(t, "ZZZ (ZZZ)", DisplayAirport("ZZZ"))
}

func TestIATAFromGraphID(t *testing.T) {
	code, ok := IATAFromGraphID(31913)
	require.True(t, ok)
	assert.Equal(t, "FR", code)

	_, ok = IATAFromGraphID(-1)
	assert.False(t, ok)
}

func TestSuggestAirports(t *testing.T) {
	matches := SuggestAirports("madrid")
	require.Len(t, matches, 1)
	assert.Equal(t, "MAD", matches[0].Code)
	assert.Equal(t, "Madrid", matches[0].City)
}

func TestSuggestAirports_MatchesByCode(t *testing.T) {
	matches := SuggestAirports("lhr")
	require.NotEmpty(t, matches)
	assert.Equal(t, "LHR", matches[0].Code)
}

func TestSuggestAirports_EmptyKeyword(t *testing.T) {
	assert.Empty(t, SuggestAirports(""))
	assert.Empty(t, SuggestAirports("   "))
}
