package imbe

import (
	"math"

	"github.com/blues/mbe/internal/voice"
)

const (
	// FundamentalCount is the number of valid b0 codes; 208..255 are invalid.
	FundamentalCount = 208

	// DefaultW0 and DefaultL describe the silent startup frame.
	DefaultW0 = 0.02985 * math.Pi
	DefaultL  = 30
)

// InvalidFundamental is returned for b0 codes without a table row.
var InvalidFundamental = voice.Fundamental{Index: -1, W0: DefaultW0, L: DefaultL, Type: voice.Invalid}

// w0 = 4*pi / (b0 + 39.5)
var fundamentals = func() [FundamentalCount]voice.Fundamental {
	var t [FundamentalCount]voice.Fundamental
	for i := range t {
		w0 := 4 * math.Pi / (float64(i) + 39.5)
		t[i] = voice.Fundamental{Index: i, W0: w0, L: voice.Harmonics(w0), Type: voice.Voice}
	}
	return t
}()

// LookupFundamental returns the table row for b0, or InvalidFundamental.
func LookupFundamental(b0 int) voice.Fundamental {
	if b0 < 0 || b0 >= FundamentalCount {
		return InvalidFundamental
	}
	return fundamentals[b0]
}

// Bands returns the number of voicing bands K for l harmonics.
func Bands(l int) int {
	if l <= 36 {
		return (l + 2) / 3
	}
	return 12
}
