package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		expectErr bool
	}{
		{
			name: "simple expression grammar",
			text: "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id",
		},
		{
			name: "whitespace tolerance",
			text: "   S   ->   a  b  \n",
		},
		{
			name: "continuation line",
			text: "S -> a\n| b\n|c",
		},
		{
			name:      "multiple -> on one line",
			text:      "S -> a -> b",
			expectErr: true,
		},
		{
			name:      "leading | with no prior left side",
			text:      "| a",
			expectErr: true,
		},
		{
			name:      "left side with internal whitespace",
			text:      "S T -> a",
			expectErr: true,
		},
		{
			name:      "empty left side",
			text:      " -> a",
			expectErr: true,
		},
		{
			name: "explicit epsilon alternative",
			text: "S -> a | ε",
		},
		{
			name: "blank alternative defaults to epsilon",
			text: "S -> a |",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := Parse(tc.text)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Greater(g.StartIndex(), -1)
		})
	}
}

func Test_Parse_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	text := "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id"
	g, err := Parse(text)
	if !assert.NoError(err) {
		return
	}

	rendered := g.RenderProductions()
	g2, err := Parse(rendered)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(len(g.NonTerminals()), len(g2.NonTerminals()))
	assert.Equal(len(g.Terminals()), len(g2.Terminals()))
	assert.Equal(g.RenderProductions(), g2.RenderProductions())
}

func Test_Parse_CannotFindLeftSide(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("S -> a\nb")
	assert.Error(err)
}
