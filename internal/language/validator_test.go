package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code      string
		want      Language
		dedicated bool
	}{
		{"french", French, true},
		{"FR", French, true},
		{" English ", English, true},
		{"es", Spanish, true},
		{"de", German, true},
		{"it", Italian, true},
		{"klingon", Default, false},
		{"", Default, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			got, dedicated := Parse(tt.code)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dedicated, dedicated)
		})
	}
}

func TestValidatorAcceptsMatchingText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang Language
		text string
	}{
		{English, "The compiler is a program that translates source code."},
		{French, "La capitale de la France est Paris, qui est une grande ville."},
		{Spanish, "El sol es una estrella que brilla para todos."},
		{German, "Die Hauptstadt ist eine große Stadt und sehr alt."},
		{Italian, "Il gatto è un animale che dorme per molte ore."},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			t.Parallel()
			v := ForLanguage(tt.lang)
			assert.GreaterOrEqual(t, v.Score(tt.text), AcceptThreshold)
			assert.True(t, v.Validate(tt.text))
		})
	}
}

func TestValidatorRejectsNonMatchingText(t *testing.T) {
	t.Parallel()

	v := ForLanguage(French)
	// No French function words at all.
	text := "zxqv wplk mntr bdfg hjkl"
	assert.Equal(t, 0.0, v.Score(text))
	assert.False(t, v.Validate(text))
}

func TestValidatorScoreCountsDistinctIndicators(t *testing.T) {
	t.Parallel()

	v := ForLanguage(English)
	// Repeating one indicator many times still counts once.
	single := "the the the the the"
	assert.Equal(t, 1.0, v.Score(single))
	assert.False(t, v.Validate(single))

	two := "the cat and dog"
	assert.GreaterOrEqual(t, v.Score(two), 2.0)
	assert.True(t, v.Validate(two))
}

func TestForLanguageFallsBackToDefault(t *testing.T) {
	t.Parallel()

	v := ForLanguage(Language("klingon"))
	assert.Equal(t, Default, v.Language())
}

func TestValidatorsDiscriminate(t *testing.T) {
	t.Parallel()

	french := "Quelle est la capitale de la France? C'est Paris, une ville dans le nord."
	assert.True(t, ForLanguage(French).Validate(french))
	assert.False(t, ForLanguage(German).Validate(french))
}
