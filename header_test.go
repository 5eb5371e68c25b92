package mbe

import (
	"errors"
	"testing"
)

func TestHeader(t *testing.T) {
	for _, c := range []Codec{CodecAMBE, CodecIMBE} {
		data := NewHeader(c).Bytes()
		if len(data) != HeaderSize {
			t.Fatalf("header length %d, want %d", len(data), HeaderSize)
		}
		if !IsHeader(data) {
			t.Errorf("%v: IsHeader = false", c)
		}
		h, got, err := ParseHeader(data)
		if err != nil {
			t.Fatalf("%v: ParseHeader error = %v", c, err)
		}
		if got != c || h.VersionMajor != 1 || h.VersionMinor != 0 {
			t.Errorf("%v: parsed codec %v version %d.%d", c, got, h.VersionMajor, h.VersionMinor)
		}
	}

	bad := []byte{0xc0, 0xde, 0xc2, 1, 0, 1, 0}
	if _, _, err := ParseHeader(bad); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("codec2 magic: error = %v, want ErrInvalidHeader", err)
	}
	if _, _, err := ParseHeader(Magic); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("short header: error = %v, want ErrInvalidHeader", err)
	}
	mode := []byte{0xc0, 0xde, 0xbe, 1, 0, 9, 0}
	if _, _, err := ParseHeader(mode); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("mode 9: error = %v, want ErrUnsupportedMode", err)
	}
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		id    int
		typ   ToneType
		name  string
		freqs []float64
	}{
		{5, ToneDiscrete, "156.25 Hz", []float64{156.25}},
		{32, ToneDiscrete, "1000.00 Hz", []float64{1000}},
		{122, ToneDiscrete, "3812.50 Hz", []float64{3812.5}},
		{123, ToneInvalid, "INVALID 123", nil},
		{128, ToneDTMF, "DTMF 0", []float64{941, 1336}},
		{129, ToneDTMF, "DTMF 1", []float64{697, 1209}},
		{143, ToneDTMF, "DTMF #", []float64{941, 1477}},
		{144, ToneKNOX, "KNOX 0", nil},
		{163, ToneKNOX, "KNOX 19", nil},
		{164, ToneCallProgress, "DIAL", []float64{350, 440}},
		{166, ToneCallProgress, "BUSY", []float64{480, 620}},
		{169, ToneCallProgress, "CALL WAITING", []float64{440}},
		{170, ToneInvalid, "INVALID 170", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyTone(tc.id, 64)
			if got.Type != tc.typ || got.Name != tc.name || got.Amplitude != 64 {
				t.Errorf("classifyTone(%d) = %+v", tc.id, got)
			}
			if len(got.Frequencies) != len(tc.freqs) {
				t.Fatalf("frequencies = %v, want %v", got.Frequencies, tc.freqs)
			}
			for i := range tc.freqs {
				if got.Frequencies[i] != tc.freqs[i] {
					t.Errorf("frequencies = %v, want %v", got.Frequencies, tc.freqs)
				}
			}
		})
	}
}
