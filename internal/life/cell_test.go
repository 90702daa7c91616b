package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Glyph codec
// ---------------------------------------------------------------------------

func TestParseGlyph_ValidGlyphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		glyph byte
		want  Cell
	}{
		{name: "conway dead", glyph: '.', want: Cell{Kind: KindConway}},
		{name: "conway alive", glyph: '*', want: Cell{Kind: KindConway, Alive: true}},
		{name: "fredkin dead", glyph: '-', want: Cell{Kind: KindFredkin}},
		{name: "fredkin age zero", glyph: '0', want: Cell{Kind: KindFredkin, Alive: true}},
		{name: "fredkin age five", glyph: '5', want: Cell{Kind: KindFredkin, Alive: true, Age: 5}},
		{name: "fredkin age nine", glyph: '9', want: Cell{Kind: KindFredkin, Alive: true, Age: 9}},
		{name: "fredkin age ten or more", glyph: '+', want: Cell{Kind: KindFredkin, Alive: true, Age: 10}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGlyph(tc.glyph)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseGlyph_InvalidGlyph(t *testing.T) {
	t.Parallel()

	for _, glyph := range []byte{'x', ' ', '#', '@', 0} {
		_, err := ParseGlyph(glyph)
		require.Error(t, err)

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, glyph, pe.Glyph)
	}
}

func TestGlyph_RoundTrip(t *testing.T) {
	t.Parallel()

	// Every parseable glyph renders back to itself.
	glyphs := []byte{'.', '*', '-', '+'}
	for b := byte('0'); b <= '9'; b++ {
		glyphs = append(glyphs, b)
	}
	for _, b := range glyphs {
		c, err := ParseGlyph(b)
		require.NoError(t, err)
		assert.Equal(t, b, c.Glyph(), "glyph %q", b)
	}
}

func TestGlyph_HighAgesCollapseToPlus(t *testing.T) {
	t.Parallel()

	for _, age := range []int{10, 11, 42} {
		c := Cell{Kind: KindFredkin, Alive: true, Age: age}
		assert.Equal(t, byte('+'), c.Glyph())
	}
}

// ---------------------------------------------------------------------------
// Kind / Ruleset
// ---------------------------------------------------------------------------

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "conway", KindConway.String())
	assert.Equal(t, "fredkin", KindFredkin.String())
	assert.Equal(t, "border", KindBorder.String())
}

func TestParseRuleset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Ruleset
		wantErr bool
	}{
		{in: "mixed", want: RulesetMixed},
		{in: "conway", want: RulesetConway},
		{in: "fredkin", want: RulesetFredkin},
		{in: "Conway", wantErr: true},
		{in: "", wantErr: true},
		{in: "life", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRuleset(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, got.String())
		})
	}
}

func TestRuleset_Allows(t *testing.T) {
	t.Parallel()

	assert.True(t, RulesetMixed.allows(KindConway))
	assert.True(t, RulesetMixed.allows(KindFredkin))
	assert.True(t, RulesetConway.allows(KindConway))
	assert.False(t, RulesetConway.allows(KindFredkin))
	assert.True(t, RulesetFredkin.allows(KindFredkin))
	assert.False(t, RulesetFredkin.allows(KindConway))
}
