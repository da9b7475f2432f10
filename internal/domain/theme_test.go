package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestTheme_ToggleTwiceRestores(t *testing.T) {
	for _, start := range []Theme{ThemeLight, ThemeDark} {
		assert.Equal(t, start, start.Toggle().Toggle())
	}
}

func TestTheme_ToggleNeverLeavesTheTwoValues(t *testing.T) {
	theme := Theme("sepia")
	for range 10 {
		theme = theme.Toggle()
		assert.Contains(t, []Theme{ThemeLight, ThemeDark}, theme)
	}
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, DefaultTheme, ParseTheme(""))
	assert.Equal(t, DefaultTheme, ParseTheme("DARK"))
}

func TestContactForm_IsZero(t *testing.T) {
	assert.True(t, ContactForm{}.IsZero())
	assert.False(t, ContactForm{Name: "Ada"}.IsZero())
}
