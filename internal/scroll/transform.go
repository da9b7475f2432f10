package scroll

import (
	"fmt"
	"math"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

// Keyframes is a piecewise-linear mapping from input stops to output values.
// Inputs must be ascending. Values outside the first and last stop clamp.
type Keyframes struct {
	In  []float64
	Out []float64
}

// At interpolates the output for x.
func (k Keyframes) At(x float64) float64 {
	n := min(len(k.In), len(k.Out))
	if n == 0 {
		return 0
	}
	if x <= k.In[0] || n == 1 {
		return k.Out[0]
	}
	if x >= k.In[n-1] {
		return k.Out[n-1]
	}

	for i := 1; i < n; i++ {
		if x > k.In[i] {
			continue
		}
		lo, hi := k.In[i-1], k.In[i]
		t := (x - lo) / (hi - lo)
		return k.Out[i-1] + t*(k.Out[i]-k.Out[i-1])
	}

	return k.Out[n-1]
}

var (
	sectionY       = Keyframes{In: []float64{0, 1}, Out: []float64{100, -100}}
	sectionOpacity = Keyframes{In: []float64{0, 0.2, 0.8, 1}, Out: []float64{0, 1, 1, 0}}

	heroY       = Keyframes{In: []float64{0, 1}, Out: []float64{0, 300}}
	heroOpacity = Keyframes{In: []float64{0, 0.5}, Out: []float64{1, 0}}

	headerBlur = Keyframes{In: []float64{0, 50}, Out: []float64{0, 8}}
	headerMix  = Keyframes{In: []float64{0, 50}, Out: []float64{0, 1}}

	indicatorOpacity = Keyframes{In: []float64{0, 0.05}, Out: []float64{1, 0}}
)

// ScrolledThreshold is the scroll offset past which the header compacts.
const ScrolledThreshold = 50

// Motion is the translate/opacity pair applied to a section's content.
type Motion struct {
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
}

// SectionMotion maps an EnterExit progress to the content motion every
// section except hero uses.
func SectionMotion(progress float64) Motion {
	return Motion{Y: sectionY.At(progress), Opacity: sectionOpacity.At(progress)}
}

// HeroMotion maps a StartStart progress to the hero's parallax.
func HeroMotion(progress float64) Motion {
	return Motion{Y: heroY.At(progress), Opacity: heroOpacity.At(progress)}
}

// Header is the sticky header's scroll-dependent styling.
type Header struct {
	Scrolled   bool    `json:"scrolled"`
	Blur       float64 `json:"blur"`
	Background string  `json:"background"`
}

// rgba is a colour with 0-255 channels and a 0-1 alpha.
type rgba struct {
	R, G, B, A float64
}

// Header backgrounds start from transparent white for both themes.
var (
	headerClear = rgba{255, 255, 255, 0}
	headerLight = rgba{255, 255, 255, 0.8}
	headerDark  = rgba{10, 17, 32, 0.8}
)

// mix blends two colours at t. Channels are mixed in squared space so the
// midpoint of two colours is not darker than either; alpha is linear.
func mix(from, to rgba, t float64) rgba {
	channel := func(a, b float64) float64 {
		return math.Sqrt(max(0, a*a+t*(b*b-a*a)))
	}

	return rgba{
		R: channel(from.R, to.R),
		G: channel(from.G, to.G),
		B: channel(from.B, to.B),
		A: from.A + t*(to.A-from.A),
	}
}

func (c rgba) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)",
		int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)), c.A)
}

// HeaderState derives the header styling for a scroll offset and theme.
func HeaderState(scrollY float64, theme domain.Theme) Header {
	target := headerLight
	if theme == domain.ThemeDark {
		target = headerDark
	}

	return Header{
		Scrolled:   scrollY > ScrolledThreshold,
		Blur:       headerBlur.At(scrollY),
		Background: mix(headerClear, target, headerMix.At(scrollY)).String(),
	}
}

// IndicatorOpacity fades the scroll-down indicator over the first 5% of the page.
func IndicatorOpacity(pageProgress float64) float64 {
	return indicatorOpacity.At(pageProgress)
}
