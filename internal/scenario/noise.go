package scenario

import (
	"math/rand"

	"github.com/san-kum/saltflux/internal/field"
)

// Perturb returns a copy of f with Gaussian noise of the given standard
// deviation added to the driving and scalar fields. Salinity noise is scaled
// by the field's mean magnitude. Masked cells stay masked and the area is
// shared with f.
func (f *Fields) Perturb(sigma float64, seed int64) *Fields {
	if sigma <= 0 {
		return f
	}
	rng := rand.New(rand.NewSource(seed))
	noise := func(ref *field.Field, scale float64) *field.Field {
		return ref.Add(field.FromFunc(func([]int) float64 {
			return sigma * scale * rng.NormFloat64()
		}, ref.Shape()...))
	}
	return &Fields{
		Driving: noise(f.Driving, 1),
		Scalar:  noise(f.Scalar, meanAbs(f.Scalar)),
		Area:    f.Area,
	}
}

func meanAbs(f *field.Field) float64 {
	vals := f.Valid()
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum / float64(len(vals))
}
