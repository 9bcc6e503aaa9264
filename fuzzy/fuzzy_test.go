package fuzzy

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("Zinger Burger", "zinger  burger"))
	assert.Equal(t, 80, Ratio("rolls", "roll"))
	assert.Equal(t, 75, Ratio("role", "roll"))
	assert.Equal(t, 0, Ratio("", "roll"))
	assert.Less(t, Ratio("pizza", "burger"), 50)
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100, PartialRatio("zinger", "Zinger Burger"))
	assert.Equal(t, 100, PartialRatio("Zinger Burger", "zinger"))
	assert.Equal(t, 83, PartialRatio("zingr", "mighty zinger"))
	assert.Equal(t, 0, PartialRatio("zinger", ""))
}

func TestTokenSetRatio(t *testing.T) {
	assert.Equal(t, 100, TokenSetRatio("zinger", "Zinger Burger"))
	assert.Equal(t, 100, TokenSetRatio("burger zinger zinger", "zinger burger"))
	assert.Equal(t, 100, TokenSetRatio("large zinger burger", "Zinger Burger"))
	assert.Greater(t, TokenSetRatio("zinger burgr", "zinger burger"), 80)
	assert.Less(t, TokenSetRatio("pizza", "Zinger Burger"), 60)
	assert.Equal(t, 0, TokenSetRatio("   ", "burger"))
}

func TestBestMatch(t *testing.T) {
	_, ok := BestMatch("zinger", nil, TokenSetRatio)
	assert.False(t, ok)

	m, ok := BestMatch("zinger", []string{"Fajita Pizza", "Zinger Burger", "Mighty Zinger"}, TokenSetRatio)
	require.True(t, ok)
	assert.Equal(t, "Zinger Burger", m.Value)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, 100, m.Score)
}

func TestBestMatchKeepsFirstOnTie(t *testing.T) {
	constant := func(string, string) int { return 42 }

	m, ok := BestMatch("anything", []string{"first", "second"}, constant)
	require.True(t, ok)
	assert.Equal(t, "first", m.Value)
	assert.Equal(t, 42, m.Score)
}

func TestScorerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	scorers := map[string]Scorer{
		"ratio":     Ratio,
		"partial":   PartialRatio,
		"token set": TokenSetRatio,
	}

	for name, scorer := range scorers {
		scorer := scorer

		properties.Property(name+" stays within 0..100", prop.ForAll(
			func(a, b string) bool {
				s := scorer(a, b)
				return s >= 0 && s <= 100
			},
			gen.AnyString(), gen.AnyString(),
		))

		properties.Property(name+" is symmetric", prop.ForAll(
			func(a, b string) bool {
				return scorer(a, b) == scorer(b, a)
			},
			gen.AlphaString(), gen.AlphaString(),
		))

		properties.Property(name+" scores identical words 100", prop.ForAll(
			func(a string) bool {
				return scorer(a, a) == 100
			},
			gen.Identifier(),
		))
	}

	properties.TestingRun(t)
}
