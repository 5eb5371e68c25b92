package mbe

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/blues/mbe/internal/ambe"
	"github.com/blues/mbe/internal/bits"
	"github.com/blues/mbe/internal/imbe"
)

// Option configures a Decoder at construction time.
type Option func(*config) error

type config struct {
	gain float64
	log  zerolog.Logger
	rand RandSource
}

func defaultConfig() config {
	return config{
		gain: DefaultGain,
		log:  zerolog.Nop(),
	}
}

// WithGain sets the output gain, in (0, 16).
func WithGain(g float64) Option {
	return func(c *config) error {
		if err := validGain(g); err != nil {
			return err
		}
		c.gain = g
		return nil
	}
}

// WithLogger sets the logger for frame events. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) error {
		c.log = l
		return nil
	}
}

// WithRand sets the source of random phase offsets for voiced synthesis.
func WithRand(r RandSource) Option {
	return func(c *config) error {
		if r == nil {
			return fmt.Errorf("mbe: nil random source")
		}
		c.rand = r
		return nil
	}
}

// WithSeed seeds the random phase source, making output reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func validGain(g float64) error {
	if !(g > 0 && g < MaxGain) || math.IsNaN(g) {
		return fmt.Errorf("%w: %g not in (0, %g)", ErrInvalidGain, g, MaxGain)
	}
	return nil
}

// Decoder turns a stream of frames of one codec into 8 kHz PCM. Frames must
// be fed in order; separate streams need separate decoders.
type Decoder struct {
	codec Codec
	gain  float64
	log   zerolog.Logger

	prev  *Parameters
	synth *synthesizer

	tone    Tone
	hasTone bool
}

// NewDecoder creates a decoder for the given codec.
func NewDecoder(codec Codec, opts ...Option) (*Decoder, error) {
	if codec.FrameBytes() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(codec))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Decoder{
		codec: codec,
		gain:  cfg.gain,
		log:   cfg.log.With().Str("codec", codec.String()).Logger(),
		synth: newSynthesizer(cfg.rand),
	}
	d.prev = defaultParameters()
	return d, nil
}

// NewAMBE creates an AMBE 3600x2450 decoder.
func NewAMBE(opts ...Option) (*Decoder, error) {
	return NewDecoder(CodecAMBE, opts...)
}

// NewIMBE creates an IMBE 7200x4400 decoder.
func NewIMBE(opts ...Option) (*Decoder, error) {
	return NewDecoder(CodecIMBE, opts...)
}

// Name returns the codec name.
func (d *Decoder) Name() string {
	return d.codec.String()
}

// Codec returns the decoder's frame format.
func (d *Decoder) Codec() Codec {
	return d.codec
}

// FrameBytes returns the input frame size.
func (d *Decoder) FrameBytes() int {
	return d.codec.FrameBytes()
}

// Gain returns the output gain.
func (d *Decoder) Gain() float64 {
	return d.gain
}

// SetGain sets the output gain, in (0, 16).
func (d *Decoder) SetGain(g float64) error {
	if err := validGain(g); err != nil {
		return err
	}
	d.gain = g
	return nil
}

// Reset returns the decoder to its startup state. Call it between streams.
func (d *Decoder) Reset() {
	d.prev = defaultParameters()
	d.synth.reset()
	d.tone = Tone{}
	d.hasTone = false
	d.log.Debug().Msg("reset")
}

// Tone returns the most recent tone frame, if any frame since the last
// Reset was a tone.
func (d *Decoder) Tone() (Tone, bool) {
	return d.tone, d.hasTone
}

// Parameters returns a copy of the last frame's model parameters.
func (d *Decoder) Parameters() *Parameters {
	return d.prev.Clone()
}

// Decode decodes one frame into SamplesPerFrame samples in [-1, 1].
func (d *Decoder) Decode(frame []byte) ([]float32, error) {
	if len(frame) != d.FrameBytes() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(frame), d.FrameBytes())
	}

	var (
		cur  *Parameters
		mute bool
		err  error
	)
	switch d.codec {
	case CodecAMBE:
		cur, mute, err = d.decodeAMBE(frame)
	case CodecIMBE:
		cur, mute, err = d.decodeIMBE(frame)
	}
	if err != nil {
		return nil, err
	}

	pcm := d.synth.synthesizeOneFrame(cur, d.prev)
	if mute {
		for i := range pcm {
			pcm[i] = 0
		}
	} else {
		earProtection(pcm)
	}
	cur.Muted = mute
	d.prev = cur
	return scaleOutput(pcm, d.gain), nil
}

// DecodeHex decodes a frame given as a hex string.
func (d *Decoder) DecodeHex(s string) ([]float32, error) {
	f, err := bits.FromHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return d.Decode(f.Bytes())
}

// DecodeInt16 decodes one frame into 16-bit samples.
func (d *Decoder) DecodeInt16(frame []byte) ([]int16, error) {
	pcm, err := d.Decode(frame)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(pcm))
	for i, s := range pcm {
		v := math.Round(float64(s) * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out, nil
}

// repeat returns the parameters for a frame whose fields were discarded:
// the previous frame again, or the silent default once maxRepeats is spent.
func (d *Decoder) repeat(errs []int, total int) *Parameters {
	if d.prev.RepeatCount >= maxRepeats {
		d.log.Debug().Int("repeats", d.prev.RepeatCount).Msg("muting after repeated frames")
		p := defaultParameters()
		p.Errors, p.TotalErrors = errs, total
		return p
	}
	p := d.prev.Clone()
	p.RepeatCount++
	p.Errors, p.TotalErrors = errs, total
	d.log.Debug().Int("repeat", p.RepeatCount).Int("errors", total).Msg("repeating frame")
	return p
}

// finish runs the enhancer and smoother on freshly decoded parameters.
func (d *Decoder) finish(p *Parameters, errs []int, total int, weight float64, coset int) {
	p.Errors, p.TotalErrors = errs, total
	p.ErrorRate = 0.95*d.prev.ErrorRate + weight*float64(total)
	enhance(p, d.prev)
	smooth(p, d.prev, coset)
}

func (d *Decoder) decodeAMBE(frame []byte) (*Parameters, bool, error) {
	f, err := ambe.Decode(frame)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFrameLength, err)
	}
	errs := f.Errors[:]
	total := f.TotalErrors()

	if f.ToneConflict {
		d.log.Debug().Int("b0", f.B[0]).Int("errors", total).Str("type", f.Type.String()).Msg("tone check failed")
	}
	if f.Type == FrameTone && !f.ToneConflict {
		d.tone = classifyTone(f.ToneID, f.ToneAmplitude)
		d.hasTone = true
		d.log.Debug().Int("id", d.tone.ID).Str("tone", d.tone.Name).Int("amplitude", d.tone.Amplitude).Msg("tone frame")
		p := defaultParameters()
		p.Type = FrameTone
		p.Errors, p.TotalErrors = append([]int(nil), errs...), total
		p.ErrorRate = d.prev.ErrorRate
		return p, false, nil
	}
	if f.Type == FrameTone || ambeRepeat(f) {
		return d.repeat(append([]int(nil), errs...), total), false, nil
	}

	p := decodeAMBE(f, d.prev)
	d.finish(p, append([]int(nil), errs...), total, ambeErrorWeight, f.Errors[1])
	return p, p.ErrorRate > ambeMuteErrorRate, nil
}

func (d *Decoder) decodeIMBE(frame []byte) (*Parameters, bool, error) {
	f, err := imbe.Decode(frame)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFrameLength, err)
	}
	errs := append([]int(nil), f.Errors[:]...)
	total := f.TotalErrors()

	if imbeRepeat(f, d.prev) {
		if f.Type == FrameInvalid {
			d.log.Debug().Int("b0", f.B[0]).Msg("invalid fundamental")
		}
		return d.repeat(errs, total), false, nil
	}

	p := decodeIMBE(f, d.prev)
	d.finish(p, errs, total, imbeErrorWeight, f.Errors[4])
	return p, p.ErrorRate > imbeMuteErrorRate, nil
}
