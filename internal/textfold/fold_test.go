package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amélie", "amelie"},
		{"AMELIE", "amelie"},
		{"Shingeki no Kyojin", "shingeki no kyojin"},
		{"Pokémon Ｒｅｄ", "pokemon red"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "the wire\x1fdavid simon", Join("The Wire", "", "  ", "David Simon"))
	assert.Equal(t, "", Join())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%amelie%", ContainsPattern(" Amélie "))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\x%`, ContainsPattern(`C:\x`))
}
