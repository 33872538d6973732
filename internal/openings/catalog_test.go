package openings_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessassist/internal/openings"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := openings.Default()
	require.Len(t, c.All(), 9)
	assert.Same(t, c, openings.Default())

	for _, o := range c.All() {
		assert.NotEmpty(t, o.Name)
		assert.NotEmpty(t, o.ECOCode)
		assert.Len(t, o.KeyIdeas, 3, o.Name)
		assert.Len(t, o.TypicalPlans, 3, o.Name)
		assert.GreaterOrEqual(t, o.SuccessRate, 0.0)
		assert.LessOrEqual(t, o.SuccessRate, 1.0)
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	c := openings.Default()
	first := c.All()
	first[0].Name = "changed"
	first[0].KeyIdeas[0] = "changed"

	again := c.All()
	assert.Equal(t, "Italian Game", again[0].Name)
	assert.Equal(t, "Rapid development", again[0].KeyIdeas[0])
}

func TestLookup(t *testing.T) {
	c := openings.Default()

	o, ok := c.Lookup("C50")
	require.True(t, ok)
	assert.Equal(t, "Italian Game", o.Name)
	assert.Equal(t, openings.Beginner, o.Difficulty)
	assert.Equal(t, openings.White, o.Color)

	o, ok = c.Lookup(" e20 ")
	require.True(t, ok)
	assert.Equal(t, "Nimzo-Indian Defense", o.Name)

	_, ok = c.Lookup("Z99")
	assert.False(t, ok)
}

func TestByMoves(t *testing.T) {
	tests := []struct {
		name  string
		moves string
		want  string
	}{
		{"exact line", "1.e4 c5", "B20"},
		{"spaced move numbers", "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6", "C60"},
		{"mixed case", "1.E4 E5 2.NF3 NC6 3.BC4", "C50"},
		{"queen pawn", "1.d4 d5 2.c4 c6 3.Nf3", "D10"},
		{"english", "1.c4 e5", "A10"},
	}

	c := openings.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := c.ByMoves(tt.moves)
			require.True(t, ok)
			assert.Equal(t, tt.want, o.ECOCode)
		})
	}
}

func TestByMoves_NoMatch(t *testing.T) {
	c := openings.Default()

	_, ok := c.ByMoves("1.e4 e5")
	assert.False(t, ok)

	_, ok = c.ByMoves("1.c45")
	assert.False(t, ok)

	_, ok = c.ByMoves("")
	assert.False(t, ok)
}

func TestNormalizeMoves(t *testing.T) {
	assert.Equal(t, "1.e4 e5 2.nf3", openings.NormalizeMoves("  1. e4   e5\n2.Nf3 "))
}

func TestParse_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "unknown difficulty",
			yaml: "- {name: X, eco: A00, moves: 1.a3, difficulty: grandmaster, color: white, success_rate: 0.5}",
			msg:  "unknown difficulty",
		},
		{
			name: "bad color",
			yaml: "- {name: X, eco: A00, moves: 1.a3, difficulty: beginner, color: green, success_rate: 0.5}",
			msg:  "unknown color",
		},
		{
			name: "rate out of range",
			yaml: "- {name: X, eco: A00, moves: 1.a3, difficulty: beginner, color: white, success_rate: 1.5}",
			msg:  "success_rate",
		},
		{
			name: "duplicate eco",
			yaml: "- {name: X, eco: A00, moves: 1.a3, difficulty: beginner, color: white, success_rate: 0.5}\n" +
				"- {name: Y, eco: A00, moves: 1.h3, difficulty: beginner, color: white, success_rate: 0.5}",
			msg: "duplicate eco",
		},
		{
			name: "missing eco",
			yaml: "- {name: X, moves: 1.a3, difficulty: beginner, color: white, success_rate: 0.5}",
			msg:  "eco is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openings.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDifficulty_OrderAndText(t *testing.T) {
	assert.Less(t, openings.Beginner, openings.Intermediate)
	assert.Less(t, openings.Intermediate, openings.Advanced)
	assert.Less(t, openings.Advanced, openings.Expert)

	d, err := openings.ParseDifficulty("ADVANCED")
	require.NoError(t, err)
	assert.Equal(t, openings.Advanced, d)

	_, err = openings.ParseDifficulty("casual")
	assert.Error(t, err)

	o, _ := openings.Default().Lookup("C30")
	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"difficulty":"advanced"`)
}

func TestParseColor(t *testing.T) {
	c, err := openings.ParseColor("Black")
	require.NoError(t, err)
	assert.Equal(t, openings.Black, c)

	_, err = openings.ParseColor("both")
	assert.Error(t, err)
}

func TestIdentify(t *testing.T) {
	pgnOpt, err := chess.PGN(strings.NewReader("1. e4 c5 2. Nf3 d6 *"))
	require.NoError(t, err)

	eco, title, ok := openings.Identify(chess.NewGame(pgnOpt))
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(eco, "B"), eco)
	assert.Contains(t, title, "Sicilian")

	_, _, ok = openings.Identify(nil)
	assert.False(t, ok)
}
