// Command mbedec decodes AMBE or IMBE frames into raw 16-bit little-endian
// PCM.
package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blues/mbe"
	"github.com/blues/mbe/internal/config"
	"github.com/blues/mbe/internal/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] InputFile OutputRawFile\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g. (headerless)    %s -codec imbe input.bin output.raw\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g. (with header)   %s input.mbe output.raw\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g. (hex lines)     %s -hex -codec ambe frames.txt -\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Codec, "codec", cfg.Codec, "frame format: ambe or imbe (default from header, else ambe)")
	flag.Float64Var(&cfg.Gain, "gain", cfg.Gain, "output gain")
	flag.IntVar(&cfg.OutputRate, "rate", cfg.OutputRate, "output sample rate in Hz")
	flag.BoolVar(&cfg.Hex, "hex", cfg.Hex, "input is hex text, one frame per line")
	flag.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}

	log := logger.Init(cfg.LogLevel, os.Stderr)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	inputFile, outputFile := flag.Arg(0), flag.Arg(1)

	var input []byte
	if inputFile == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputFile)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("reading input")
	}

	pcm, err := decode(cfg, input, log)
	if err != nil {
		log.Fatal().Err(err).Msg("decoding")
	}

	if cfg.OutputRate != mbe.SampleRate {
		pcm, err = resample(pcm, mbe.SampleRate, cfg.OutputRate)
		if err != nil {
			log.Fatal().Err(err).Int("rate", cfg.OutputRate).Msg("resampling")
		}
	}

	if err := writeOutput(outputFile, toInt16LE(pcm)); err != nil {
		log.Fatal().Err(err).Str("file", outputFile).Msg("writing output")
	}
}

// decode runs every frame in input through a decoder and returns the
// concatenated samples in [-1, 1] at 8 kHz.
func decode(cfg config.Config, input []byte, log zerolog.Logger) ([]float32, error) {
	codec, data, err := selectCodec(cfg, input, log)
	if err != nil {
		return nil, err
	}

	dec, err := mbe.NewDecoder(codec, mbe.WithGain(cfg.Gain), mbe.WithLogger(log))
	if err != nil {
		return nil, err
	}

	var (
		pcm     []float32
		frames  int
		repeats int
		muted   int
		tones   int
	)
	handle := func(samples []float32) {
		pcm = append(pcm, samples...)
		frames++
		p := dec.Parameters()
		if p.RepeatCount > 0 {
			repeats++
		}
		if p.Muted {
			muted++
		}
		if p.Type == mbe.FrameTone {
			tones++
			if t, ok := dec.Tone(); ok {
				log.Info().
					Int("frame", frames).
					Str("type", t.Type.String()).
					Str("tone", t.Name).
					Int("amplitude", t.Amplitude).
					Msg("tone")
			}
		}
	}

	if cfg.Hex {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		line := 0
		for scanner.Scan() {
			line++
			s := strings.TrimSpace(scanner.Text())
			if s == "" || strings.HasPrefix(s, "#") {
				continue
			}
			samples, err := dec.DecodeHex(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			handle(samples)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	} else {
		frameSize := dec.FrameBytes()
		for i := 0; i+frameSize <= len(data); i += frameSize {
			samples, err := dec.Decode(data[i : i+frameSize])
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i/frameSize+1, err)
			}
			handle(samples)
		}
		if rem := len(data) % frameSize; rem != 0 {
			log.Warn().Int("bytes", rem).Msg("ignoring partial trailing frame")
		}
	}

	log.Info().
		Str("codec", dec.Name()).
		Int("frames", frames).
		Int("repeats", repeats).
		Int("muted", muted).
		Int("tones", tones).
		Msg("decoded")
	return pcm, nil
}

// selectCodec picks the frame format from the .mbe header when there is one,
// else from the configuration, and returns the frame data without the header.
func selectCodec(cfg config.Config, input []byte, log zerolog.Logger) (mbe.Codec, []byte, error) {
	codec := mbe.CodecAMBE
	if cfg.Codec != "" {
		c, err := mbe.ParseCodec(cfg.Codec)
		if err != nil {
			return 0, nil, err
		}
		codec = c
	}
	if cfg.Hex || !mbe.IsHeader(input) {
		return codec, input, nil
	}

	h, c, err := mbe.ParseHeader(input)
	if err != nil {
		return 0, nil, fmt.Errorf("header %X: %w", input[:mbe.HeaderSize], err)
	}
	if cfg.Codec != "" && c != codec {
		log.Warn().Str("flag", codec.String()).Str("header", c.String()).Msg("codec flag overridden by file header")
	}
	log.Debug().Uint8("major", h.VersionMajor).Uint8("minor", h.VersionMinor).Str("codec", c.String()).Msg("file header")
	return c, input[mbe.HeaderSize:], nil
}

// writeOutput writes data to path, or to stdout when path is "-". The file is
// closed before returning so a failed close is reported too.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// toInt16LE converts samples in [-1, 1] to 16-bit little-endian PCM.
func toInt16LE(pcm []float32) []byte {
	out := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		v := s * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}
