package audio

import (
	"github.com/lixenwraith/fruit-merge/constants"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundWhoosh SoundType = iota // Fruit released
	SoundThud                    // Drop landed
	SoundBell                    // Merge, pitched by tier
	SoundChime                   // Terminal pair annihilated
	SoundBuzz                    // Game over
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundWhoosh:
		return "whoosh"
	case SoundThud:
		return "thud"
	case SoundBell:
		return "bell"
	case SoundChime:
		return "chime"
	case SoundBuzz:
		return "buzz"
	default:
		return "unknown"
	}
}

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 to 1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns the default mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		EffectVolumes: map[SoundType]float64{
			SoundWhoosh: 0.35,
			SoundThud:   0.5,
			SoundBell:   0.7,
			SoundChime:  0.8,
			SoundBuzz:   0.6,
		},
		SampleRate: constants.AudioSampleRate,
	}
}

// volume returns the effective gain for a sound type
func (c *AudioConfig) volume(s SoundType) float64 {
	return c.EffectVolumes[s] * c.MasterVolume
}
