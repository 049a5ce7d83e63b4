package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/pkg/game"
)

type panicGame struct{}

func (panicGame) Play(game.Input, string) string { panic("boom") }

func TestRegistry_Play(t *testing.T) {
	t.Parallel()

	reg := game.NewRegistry()

	_, ok := reg.Get(game.TypeNumber)
	assert.True(t, ok)
	_, ok = reg.Get(game.TypeQuiz)
	assert.True(t, ok)

	in := game.Input{Session: newSession(), Range: 10}
	assert.Equal(t, "msg", reg.Play(game.TypeNone, in, "msg"))
	assert.Equal(t, "msg", reg.Play(game.TypeUnspecified, in, "msg"))
	assert.Contains(t, reg.Play(game.TypeNumber, in, "msg"), "msg Guess a number")

	reg.Register(game.TypeQuiz, panicGame{})
	assert.NotPanics(t, func() {
		assert.Equal(t, "msg", reg.Play(game.TypeQuiz, in, "msg"))
	})

	empty := game.NewEmptyRegistry().Register(game.TypeNone, panicGame{})
	_, ok = empty.Get(game.TypeNone)
	assert.False(t, ok)
}

func TestType_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want game.Type
		err  bool
	}{
		{"number", game.TypeNumber, false},
		{" QUIZ ", game.TypeQuiz, false},
		{"none", game.TypeNone, false},
		{"", game.TypeUnspecified, false},
		{"unspecified", game.TypeUnspecified, false},
		{"word", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got game.Type
			err := got.UnmarshalText([]byte(tt.in))
			if tt.err {
				require.ErrorIs(t, err, game.ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != game.TypeUnspecified, got.IsSpecified())
		})
	}
}
