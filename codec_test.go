package mbe

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/blues/mbe/internal/ambe"
	"github.com/blues/mbe/internal/imbe"
)

func newTestDecoder(t *testing.T, c Codec) *Decoder {
	t.Helper()
	d, err := NewDecoder(c, WithSeed(1))
	if err != nil {
		t.Fatalf("NewDecoder(%v) error = %v", c, err)
	}
	return d
}

func TestNewDecoder(t *testing.T) {
	tests := []struct {
		codec Codec
		name  string
		bytes int
	}{
		{CodecAMBE, "AMBE 3600x2450", 9},
		{CodecIMBE, "IMBE 7200x4400", 18},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDecoder(t, tc.codec)
			if d.Name() != tc.name {
				t.Errorf("Name() = %q, want %q", d.Name(), tc.name)
			}
			if d.FrameBytes() != tc.bytes {
				t.Errorf("FrameBytes() = %d, want %d", d.FrameBytes(), tc.bytes)
			}
			if d.Gain() != DefaultGain {
				t.Errorf("Gain() = %v, want %v", d.Gain(), DefaultGain)
			}
		})
	}

	if _, err := NewDecoder(Codec(7)); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("NewDecoder(7) error = %v, want ErrUnsupportedMode", err)
	}
}

func TestGainValidation(t *testing.T) {
	tests := []struct {
		gain float64
		ok   bool
	}{
		{1, true},
		{0.01, true},
		{15.9, true},
		{0, false},
		{-1, false},
		{16, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tc := range tests {
		_, err := NewAMBE(WithGain(tc.gain))
		if (err == nil) != tc.ok {
			t.Errorf("WithGain(%v) error = %v, want ok=%v", tc.gain, err, tc.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidGain) {
			t.Errorf("WithGain(%v) error = %v, want ErrInvalidGain", tc.gain, err)
		}

		d := newTestDecoder(t, CodecIMBE)
		err = d.SetGain(tc.gain)
		if (err == nil) != tc.ok {
			t.Errorf("SetGain(%v) error = %v, want ok=%v", tc.gain, err, tc.ok)
		}
		if tc.ok && d.Gain() != tc.gain {
			t.Errorf("Gain() = %v after SetGain(%v)", d.Gain(), tc.gain)
		}
		if !tc.ok && d.Gain() != DefaultGain {
			t.Errorf("rejected SetGain(%v) changed gain to %v", tc.gain, d.Gain())
		}
	}
}

func TestDecode_WrongLength(t *testing.T) {
	for _, c := range []Codec{CodecAMBE, CodecIMBE} {
		d := newTestDecoder(t, c)
		for _, n := range []int{0, c.FrameBytes() - 1, c.FrameBytes() + 1} {
			if _, err := d.Decode(make([]byte, n)); !errors.Is(err, ErrFrameLength) {
				t.Errorf("%v: Decode(%d bytes) error = %v, want ErrFrameLength", c, n, err)
			}
		}
	}
}

func TestDecodeHex_Invalid(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	if _, err := d.DecodeHex("not hex"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("DecodeHex error = %v, want ErrInvalidHex", err)
	}
	if _, err := d.DecodeHex("954BE6"); !errors.Is(err, ErrFrameLength) {
		t.Errorf("DecodeHex short frame error = %v, want ErrFrameLength", err)
	}
}

func voiceFrame(b0 int) []byte {
	return ambe.Encode([9]int{b0, 3, 20, 100, 60, 10, 5, 7, 2})
}

func checkShape(t *testing.T, p *Parameters) {
	t.Helper()
	for name, n := range map[string]int{
		"Voiced":   len(p.Voiced),
		"Log2M":    len(p.Log2M),
		"M":        len(p.M),
		"Enhanced": len(p.Enhanced),
	} {
		if n != p.L+1 {
			t.Errorf("index %d: len(%s) = %d, want L+1 = %d", p.Index, name, n, p.L+1)
		}
	}
}

func checkPCM(t *testing.T, pcm []float32) {
	t.Helper()
	if len(pcm) != SamplesPerFrame {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), SamplesPerFrame)
	}
	for i, s := range pcm {
		if math.IsNaN(float64(s)) || s < -1 || s > 1 {
			t.Fatalf("sample %d = %v out of range", i, s)
		}
	}
}

func TestDecodeAMBE_ParametersShape(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	for b0 := 0; b0 < 120; b0 += 7 {
		pcm, err := d.Decode(voiceFrame(b0))
		if err != nil {
			t.Fatalf("b0=%d: Decode error = %v", b0, err)
		}
		checkPCM(t, pcm)
		p := d.Parameters()
		want, _ := ambe.LookupFundamental(b0)
		if p.Index != b0 || p.L != want.L || p.W0 != want.W0 {
			t.Errorf("b0=%d: got index %d L %d w0 %v, want L %d w0 %v", b0, p.Index, p.L, p.W0, want.L, want.W0)
		}
		if p.RepeatCount != 0 || p.Type != FrameVoice {
			t.Errorf("b0=%d: RepeatCount %d Type %v", b0, p.RepeatCount, p.Type)
		}
		checkShape(t, p)
	}
}

func TestDecodeAMBE_Silence(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	pcm, err := d.Decode(voiceFrame(124))
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	checkPCM(t, pcm)
	p := d.Parameters()
	if p.Type != FrameSilence || p.L != ambe.SilenceL || p.W0 != ambe.SilenceW0 {
		t.Errorf("silence frame: Type %v L %d w0 %v", p.Type, p.L, p.W0)
	}
	for l := 1; l <= p.L; l++ {
		if p.Voiced[l] {
			t.Errorf("silence frame harmonic %d voiced", l)
		}
	}
}

func imbeFrame(b0 int) []byte {
	lay := imbe.LayoutFor(imbe.LookupFundamental(b0).L)
	b := make([]int, lay.L+2)
	b[0] = b0
	for m := 1; m < len(b); m++ {
		b[m] = (m*11 + 3) % (1 << uint(lay.Bits[m]))
	}
	return imbe.Encode(b)
}

func TestDecodeIMBE_ParametersShape(t *testing.T) {
	d := newTestDecoder(t, CodecIMBE)
	for b0 := 0; b0 < imbe.FundamentalCount; b0 += 13 {
		pcm, err := d.Decode(imbeFrame(b0))
		if err != nil {
			t.Fatalf("b0=%d: Decode error = %v", b0, err)
		}
		checkPCM(t, pcm)
		p := d.Parameters()
		want := imbe.LookupFundamental(b0)
		if p.Index != b0 || p.L != want.L {
			t.Errorf("b0=%d: got index %d L %d, want L %d", b0, p.Index, p.L, want.L)
		}
		if p.TotalErrors != 0 || p.RepeatCount != 0 {
			t.Errorf("b0=%d: TotalErrors %d RepeatCount %d", b0, p.TotalErrors, p.RepeatCount)
		}
		checkShape(t, p)
	}
}

func isDefault(p *Parameters) bool {
	return p.Index == -1 && p.L == DefaultL && p.W0 == DefaultW0 &&
		p.RepeatCount == 0 && p.LocalEnergy == DefaultLocalEnergy
}

func TestRepeatThenMute(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		good  []byte
		bad   []byte
	}{
		{"AMBE erasure", CodecAMBE, voiceFrame(40), voiceFrame(121)},
		{"IMBE invalid", CodecIMBE, imbeFrame(90), imbe.Encode([]int{230})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDecoder(t, tc.codec)
			if _, err := d.Decode(tc.good); err != nil {
				t.Fatalf("Decode error = %v", err)
			}
			good := d.Parameters()

			for i, want := range []int{1, 2, 3, 4, 0} {
				pcm, err := d.Decode(tc.bad)
				if err != nil {
					t.Fatalf("frame %d: Decode error = %v", i, err)
				}
				checkPCM(t, pcm)
				p := d.Parameters()
				if p.RepeatCount != want {
					t.Errorf("frame %d: RepeatCount = %d, want %d", i, p.RepeatCount, want)
				}
				if want != 0 && (p.Index != good.Index || p.L != good.L) {
					t.Errorf("frame %d: repeat changed index/L to %d/%d", i, p.Index, p.L)
				}
				if want == 0 && !isDefault(p) {
					t.Errorf("frame %d: parameters not reset to default: %+v", i, p)
				}
			}
		})
	}
}

func TestGoldenFrames(t *testing.T) {
	tests := []struct {
		codec Codec
		hex   string
		index int
		l     int
		gain  float64
	}{
		{CodecAMBE, "954BE6500310B00777", 76, 29, -2.0},
		{CodecIMBE, "7C57B79E016C72542611A1E329DDE3A3DCFE", 25, 14, -2.842205},
	}
	for _, tc := range tests {
		t.Run(tc.codec.String(), func(t *testing.T) {
			d := newTestDecoder(t, tc.codec)
			pcm, err := d.DecodeHex(tc.hex)
			if err != nil {
				t.Fatalf("DecodeHex error = %v", err)
			}
			checkPCM(t, pcm)
			p := d.Parameters()
			if p.Type != FrameVoice || p.RepeatCount != 0 || p.Muted {
				t.Errorf("Type %v RepeatCount %d Muted %v, want a clean voice frame", p.Type, p.RepeatCount, p.Muted)
			}
			if p.TotalErrors != 0 {
				t.Errorf("TotalErrors = %d, want 0", p.TotalErrors)
			}
			if p.Index != tc.index || p.L != tc.l {
				t.Errorf("index %d L %d, want %d/%d", p.Index, p.L, tc.index, tc.l)
			}
			if math.Abs(p.Gain-tc.gain) > 1e-9 {
				t.Errorf("Gain = %v, want %v", p.Gain, tc.gain)
			}
		})
	}
}

func TestDecode_GainField(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	b := [9]int{67, 26, 8, 0, 0, 0, 0, 0, 0}
	if _, err := d.Decode(ambe.Encode(b)); err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	p := d.Parameters()
	if p.Index != 67 || p.L != 25 {
		t.Errorf("index %d L %d, want 67/25", p.Index, p.L)
	}
	if math.Abs(p.Gain-2.478289) > 1e-9 {
		t.Errorf("Gain = %v, want 2.478289", p.Gain)
	}

	// The gain is differential: half of the previous gain carries over.
	if _, err := d.Decode(ambe.Encode(b)); err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if got := d.Parameters().Gain; math.Abs(got-1.5*2.478289) > 1e-9 {
		t.Errorf("second Gain = %v, want %v", got, 1.5*2.478289)
	}
}

func newSeeded(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

func decodeAll(t *testing.T, d *Decoder, frames [][]byte) []float32 {
	t.Helper()
	var out []float32
	for i, f := range frames {
		pcm, err := d.Decode(f)
		if err != nil {
			t.Fatalf("frame %d: Decode error = %v", i, err)
		}
		out = append(out, pcm...)
	}
	return out
}

func TestDecode_DeterministicWithSeed(t *testing.T) {
	var frames [][]byte
	for _, b0 := range []int{30, 32, 35, 60, 61, 121, 124, 20} {
		frames = append(frames, voiceFrame(b0))
	}

	a, _ := NewAMBE(WithSeed(42))
	b, _ := NewAMBE(WithSeed(42))
	outA := decodeAll(t, a, frames)
	outB := decodeAll(t, b, frames)
	for i := range outA {
		if outA[i] != outB[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, outA[i], outB[i])
		}
	}

	// Reset clears the stream state; the noise and phase tracks restart.
	c, _ := NewAMBE(WithSeed(42))
	decodeAll(t, c, frames[:3])
	c.Reset()
	c.synth.rand = newSeeded(42)
	outC := decodeAll(t, c, frames)
	for i := range outA {
		if outA[i] != outC[i] {
			t.Fatalf("after Reset sample %d differs: %v vs %v", i, outA[i], outC[i])
		}
	}
}

func TestDecodeInt16(t *testing.T) {
	a, _ := NewAMBE(WithSeed(3))
	b, _ := NewAMBE(WithSeed(3))
	for _, b0 := range []int{10, 50, 90} {
		f := voiceFrame(b0)
		fl, err := a.Decode(f)
		if err != nil {
			t.Fatal(err)
		}
		in, err := b.DecodeInt16(f)
		if err != nil {
			t.Fatal(err)
		}
		for i := range fl {
			want := int16(math.Round(float64(fl[i]) * 32767))
			if in[i] != want {
				t.Fatalf("b0=%d sample %d = %d, want %d", b0, i, in[i], want)
			}
		}
	}
}

func TestDecode_Tone(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	if _, ok := d.Tone(); ok {
		t.Fatal("Tone reported before any tone frame")
	}
	pcm, err := d.Decode(ambe.EncodeTone(131, 90))
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	for i, s := range pcm {
		if s != 0 {
			t.Fatalf("tone frame sample %d = %v, want silence", i, s)
		}
	}
	tone, ok := d.Tone()
	if !ok {
		t.Fatal("Tone not reported")
	}
	if tone.ID != 131 || tone.Amplitude != 90 || tone.Type != ToneDTMF || tone.Name != "DTMF 3" {
		t.Errorf("Tone = %+v", tone)
	}
	if p := d.Parameters(); p.Type != FrameTone {
		t.Errorf("Parameters().Type = %v, want TONE", p.Type)
	}

	d.Reset()
	if _, ok := d.Tone(); ok {
		t.Error("Tone survived Reset")
	}
}

func TestParametersIsCopy(t *testing.T) {
	d := newTestDecoder(t, CodecAMBE)
	if _, err := d.Decode(voiceFrame(50)); err != nil {
		t.Fatal(err)
	}
	p := d.Parameters()
	p.Enhanced[1] = -1
	p.Voiced[1] = !p.Voiced[1]
	q := d.Parameters()
	if q.Enhanced[1] == -1 || q.Voiced[1] == p.Voiced[1] {
		t.Error("Parameters() shares storage with the decoder")
	}
}

func TestParseCodec(t *testing.T) {
	for in, want := range map[string]Codec{"ambe": CodecAMBE, "AMBE": CodecAMBE, "imbe": CodecIMBE, "Imbe": CodecIMBE} {
		got, err := ParseCodec(in)
		if err != nil || got != want {
			t.Errorf("ParseCodec(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCodec("codec2"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("ParseCodec(codec2) error = %v", err)
	}
}
