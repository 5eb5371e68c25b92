package mbe

import "fmt"

// ToneType classifies an AMBE tone identity.
type ToneType int

const (
	ToneInvalid ToneType = iota
	ToneDiscrete
	ToneDTMF
	ToneKNOX
	ToneCallProgress
)

func (t ToneType) String() string {
	switch t {
	case ToneDiscrete:
		return "DISCRETE"
	case ToneDTMF:
		return "DTMF"
	case ToneKNOX:
		return "KNOX"
	case ToneCallProgress:
		return "CALL PROGRESS"
	}
	return "INVALID"
}

// Tone describes the last tone frame. Audio for it is left to the host.
type Tone struct {
	ID          int
	Type        ToneType
	Amplitude   int // 0..127
	Name        string
	Frequencies []float64 // Hz; one or two oscillators, empty if unknown.
}

const (
	firstDiscreteTone = 5
	lastDiscreteTone  = 122
	discreteToneStep  = 31.25

	firstDTMFTone         = 128
	firstKNOXTone         = 144
	firstCallProgressTone = 164
	lastCallProgressTone  = 169
)

var dtmfKeys = [16]struct {
	key       string
	low, high float64
}{
	{"0", 941, 1336}, {"1", 697, 1209}, {"2", 697, 1336}, {"3", 697, 1477},
	{"4", 770, 1209}, {"5", 770, 1336}, {"6", 770, 1477}, {"7", 852, 1209},
	{"8", 852, 1336}, {"9", 852, 1477}, {"A", 697, 1633}, {"B", 770, 1633},
	{"C", 852, 1633}, {"D", 941, 1633}, {"*", 941, 1209}, {"#", 941, 1477},
}

var callProgress = [lastCallProgressTone - firstCallProgressTone + 1]struct {
	name  string
	freqs []float64
}{
	{"DIAL", []float64{350, 440}},
	{"RING", []float64{440, 480}},
	{"BUSY", []float64{480, 620}},
	{"REORDER", []float64{480, 620}},
	{"OFF HOOK", []float64{1400, 2060}},
	{"CALL WAITING", []float64{440}},
}

// classifyTone fills in the type, name and frequencies for a tone id.
func classifyTone(id, amplitude int) Tone {
	t := Tone{ID: id, Amplitude: amplitude}
	switch {
	case id >= firstDiscreteTone && id <= lastDiscreteTone:
		f := discreteToneStep * float64(id)
		t.Type = ToneDiscrete
		t.Name = fmt.Sprintf("%.2f Hz", f)
		t.Frequencies = []float64{f}
	case id >= firstDTMFTone && id < firstKNOXTone:
		k := dtmfKeys[id-firstDTMFTone]
		t.Type = ToneDTMF
		t.Name = "DTMF " + k.key
		t.Frequencies = []float64{k.low, k.high}
	case id >= firstKNOXTone && id < firstCallProgressTone:
		t.Type = ToneKNOX
		t.Name = fmt.Sprintf("KNOX %d", id-firstKNOXTone)
	case id >= firstCallProgressTone && id <= lastCallProgressTone:
		c := callProgress[id-firstCallProgressTone]
		t.Type = ToneCallProgress
		t.Name = c.name
		t.Frequencies = append([]float64(nil), c.freqs...)
	default:
		t.Type = ToneInvalid
		t.Name = fmt.Sprintf("INVALID %d", id)
	}
	return t
}
