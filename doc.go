// Package mbe decodes AMBE 3600x2450 and IMBE 7200x4400 voice frames into
// 8 kHz PCM.
//
// Each frame is error corrected and unpacked, its spectral model is rebuilt
// by prediction from the previous frame, enhanced and smoothed, and then
// synthesised as a sum of band-shaped noise and phase-tracked harmonics:
//
//	dec, err := mbe.NewAMBE(mbe.WithGain(1.5))
//	...
//	pcm, err := dec.Decode(frame) // 160 samples in [-1, 1]
//
// A Decoder carries state from frame to frame. Feed it one stream in order
// and call Reset between streams.
package mbe
