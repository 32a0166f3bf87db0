package constants

import "time"

// Audio output
const (
	AudioSampleRate = 48000
	// AudioBufferDuration sizes the speaker buffer; larger values add latency
	AudioBufferDuration = 100 * time.Millisecond
	// DefaultMasterVolume is the master gain in [0,1]
	DefaultMasterVolume = 0.6
)

// Drop whoosh timing
const (
	WhooshSoundDuration = 180 * time.Millisecond
	WhooshSoundAttack   = 60 * time.Millisecond
	WhooshSoundRelease  = 110 * time.Millisecond
)

// Landing thud timing
const (
	ThudSoundDuration = 90 * time.Millisecond
	ThudSoundAttack   = 3 * time.Millisecond
	ThudSoundRelease  = 70 * time.Millisecond
	ThudSoundFreq     = 90.0
)

// Merge bell timing, pitch climbs by BellSemitonesPerTier from BellBaseFreq
const (
	BellSoundDuration           = 450 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 400 * time.Millisecond
	BellSoundOvertoneRelease    = 150 * time.Millisecond
	BellBaseFreq                = 440.0
	BellSemitonesPerTier        = 2
)

// Annihilation chime timing
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 320 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 250 * time.Millisecond
)

// Game-over buzz timing
const (
	BuzzSoundDuration = 700 * time.Millisecond
	BuzzSoundAttack   = 10 * time.Millisecond
	BuzzSoundRelease  = 400 * time.Millisecond
	BuzzSoundFreq     = 110.0
)
