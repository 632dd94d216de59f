package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"back", km.Back, []string{"esc"}},
		{"choose", km.Choose, []string{" ", "enter"}},
		{"save", km.Save, []string{"s"}},
		{"skip", km.Skip, []string{"n"}},
		{"dismiss", km.Dismiss, []string{"x"}},
		{"next page", km.NextPage, []string{"right", "l"}},
		{"previous page", km.PrevPage, []string{"left", "h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.True(t, Matches(k, tt.binding), k)
			}
		})
	}
}

func TestMatches_NoMatch(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("s", km.Skip))
	assert.False(t, Matches("", km.Save))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Contains(t, km.AnnotateHelp(), km.Save)
	assert.Contains(t, km.ListHelp(), km.NextPage)
	assert.Len(t, km.FullHelp(), 4)
	for _, group := range km.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}
