package domain

// Theme is the page color scheme. Only ThemeLight and ThemeDark exist.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used for visitors with no stored preference.
const DefaultTheme = ThemeLight

// Toggle returns the other theme. Anything that is not dark toggles to dark,
// so repeated toggles only ever alternate between the two values.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a stored value to a Theme, falling back to DefaultTheme.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s)
	default:
		return DefaultTheme
	}
}

// String implements fmt.Stringer.
func (t Theme) String() string { return string(t) }
