package component

type AudioCue struct {
	File   string
	Volume float64
	Loop   bool
}

// SoundPlayer is the part of an ebiten audio.Player the game drives.
type SoundPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
}

// Audio maps cue names to files. Players are created on first use.
type Audio struct {
	Cues    map[string]AudioCue
	Players map[string]SoundPlayer
}

var AudioComponent = NewComponent[Audio]()

// Music is a looping background track.
type Music struct {
	File    string
	Volume  float64
	Player  SoundPlayer
	Started bool
}

var MusicComponent = NewComponent[Music]()
