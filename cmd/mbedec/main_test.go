package main

import (
	"encoding/binary"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blues/mbe"
	"github.com/blues/mbe/internal/config"
)

func TestToInt16LE(t *testing.T) {
	out := toInt16LE([]float32{0, 1, -1, 2, -2})
	want := []int16{0, 32767, -32767, 32767, -32768}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(out[i*2:])); got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestSelectCodec(t *testing.T) {
	log := zerolog.New(io.Discard)
	frames := make([]byte, 2*mbe.IMBEFrameBytes)

	tests := []struct {
		name     string
		codec    string
		input    []byte
		want     mbe.Codec
		wantData int
	}{
		{"headerless default", "", frames, mbe.CodecAMBE, len(frames)},
		{"headerless flag", "imbe", frames, mbe.CodecIMBE, len(frames)},
		{"header wins", "ambe", append(mbe.NewHeader(mbe.CodecIMBE).Bytes(), frames...), mbe.CodecIMBE, len(frames)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Codec = tc.codec
			c, data, err := selectCodec(cfg, tc.input, log)
			if err != nil {
				t.Fatalf("selectCodec error = %v", err)
			}
			if c != tc.want || len(data) != tc.wantData {
				t.Errorf("got %v with %d bytes, want %v with %d", c, len(data), tc.want, tc.wantData)
			}
		})
	}

	bad := append([]byte{0xc0, 0xde, 0xbe, 1, 0, 9, 0}, frames...)
	if _, _, err := selectCodec(config.Default(), bad, log); err == nil {
		t.Error("selectCodec accepted header mode 9")
	}
}

func TestDecode_Hex(t *testing.T) {
	cfg := config.Default()
	cfg.Hex = true
	cfg.Codec = "ambe"
	input := "# two frames\n954BE6500310B00777\n\n954BE6500310B00777\n"
	pcm, err := decode(cfg, []byte(input), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(pcm) != 2*mbe.SamplesPerFrame {
		t.Errorf("got %d samples, want %d", len(pcm), 2*mbe.SamplesPerFrame)
	}

	_, err = decode(cfg, []byte("zz\n"), zerolog.New(io.Discard))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("bad hex error = %v", err)
	}
}

func TestDecode_Binary(t *testing.T) {
	cfg := config.Default()
	input := append(mbe.NewHeader(mbe.CodecAMBE).Bytes(), make([]byte, 3*mbe.AMBEFrameBytes+4)...)
	pcm, err := decode(cfg, input, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(pcm) != 3*mbe.SamplesPerFrame {
		t.Errorf("got %d samples, want %d", len(pcm), 3*mbe.SamplesPerFrame)
	}
}

func TestResample_SameRate(t *testing.T) {
	in := []float32{0.1, 0.2}
	out, err := resample(in, 8000, 8000)
	if err != nil || len(out) != 2 {
		t.Errorf("resample = %v, %v", out, err)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.raw")
	data := toInt16LE([]float32{0.5, -0.5})
	if err := writeOutput(path, data); err != nil {
		t.Fatalf("writeOutput error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("file = %X, want %X", got, data)
	}

	if err := writeOutput(filepath.Join(dir, "missing", "out.raw"), data); err == nil {
		t.Error("writeOutput into a missing directory succeeded")
	}
}
