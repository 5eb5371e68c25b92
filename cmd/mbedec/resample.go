package main

import (
	"fmt"

	"github.com/dh1tw/gosamplerate"
)

// resample converts mono samples from one rate to another with libsamplerate.
func resample(in []float32, from, to int) ([]float32, error) {
	if from == to || len(in) == 0 {
		return in, nil
	}
	out, err := gosamplerate.Simple(in, float64(to)/float64(from), 1, gosamplerate.SRC_SINC_MEDIUM_QUALITY)
	if err != nil {
		return nil, fmt.Errorf("resample %d->%d: %w", from, to, err)
	}
	return out, nil
}
