package system

import (
	"errors"
	"testing"

	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestAudio(t *testing.T, muted bool) (*AudioSystem, *test.Hook, *[]string) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	a := NewAudioSystem(logger, muted)
	var loads []string
	a.load = func(path string, _ bool) (component.SoundPlayer, error) {
		loads = append(loads, path)
		return nil, errors.New("no audio device")
	}
	return a, hook, &loads
}

type fakeSound struct {
	playing   bool
	plays     int
	volume    float64
	rewindErr error
}

func (f *fakeSound) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeSound) Pause() { f.playing = false }
func (f *fakeSound) IsPlaying() bool { return f.playing }
func (f *fakeSound) Rewind() error { return f.rewindErr }
func (f *fakeSound) SetVolume(volume float64) { f.volume = volume }

func addTestAudio(t *testing.T, w *ecs.World) {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.AudioComponent, &component.Audio{
		Cues: map[string]component.AudioCue{
			"jump":       {File: "jump.ogg", Volume: 0.07},
			"glide_loop": {File: "glide.ogg", Volume: 0.07, Loop: true},
		},
	})
}

func TestAudioWarnsOncePerMissingFile(t *testing.T) {
	w := ecs.NewWorld()
	addTestAudio(t, w)
	a, hook, loads := newTestAudio(t, false)

	for i := 0; i < 3; i++ {
		playSound(w, "jump")
		a.Update(w)
	}

	if len(*loads) != 1 {
		t.Fatalf("loads = %v, want one attempt", *loads)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("log entries = %+v", hook.AllEntries())
	}
	if got := hook.LastEntry().Data["file"]; got != "jump.ogg" {
		t.Fatalf("warning file field = %v", got)
	}
	if w.Events().Len() != 0 {
		t.Fatal("sound events should be drained")
	}
}

func TestAudioUnknownCue(t *testing.T) {
	w := ecs.NewWorld()
	addTestAudio(t, w)
	a, hook, loads := newTestAudio(t, false)

	playSound(w, "explode")
	playSound(w, "explode")
	stopSound(w, "glide_loop")
	a.Update(w)

	if len(*loads) != 0 {
		t.Fatalf("unknown cues and stops should not load, got %v", *loads)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Data["cue"] != "explode" {
		t.Fatalf("log entries = %+v", hook.AllEntries())
	}
}

func TestAudioMusicLoadsOnce(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	music := mustAdd(t, w, e, component.MusicComponent, &component.Music{File: "metropolis.ogg", Volume: 0.05})
	a, hook, loads := newTestAudio(t, false)

	a.Update(w)
	a.Update(w)

	if !music.Started || len(*loads) != 1 || (*loads)[0] != "metropolis.ogg" {
		t.Fatalf("music = %+v, loads %v", *music, *loads)
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("log entries = %+v", hook.AllEntries())
	}
}

func TestAudioMuted(t *testing.T) {
	w := ecs.NewWorld()
	addTestAudio(t, w)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.MusicComponent, &component.Music{File: "metropolis.ogg"})
	a, hook, loads := newTestAudio(t, true)

	playSound(w, "jump")
	a.Update(w)
	if len(*loads) != 0 || len(hook.Entries) != 0 {
		t.Fatalf("muted audio should not load, got %v", *loads)
	}
	if w.Events().Len() != 0 {
		t.Fatal("muted audio still drains its events")
	}

	a.SetMuted(w, false)
	if a.Muted() {
		t.Fatal("expected unmuted")
	}
	a.Update(w)
	if len(*loads) != 1 {
		t.Fatalf("unmuting should start the music, loads %v", *loads)
	}
}

func TestAudioPlaysAndStopsLoop(t *testing.T) {
	w := ecs.NewWorld()
	addTestAudio(t, w)
	a, hook, _ := newTestAudio(t, false)
	loop := &fakeSound{}
	a.load = func(string, bool) (component.SoundPlayer, error) { return loop, nil }

	playSound(w, "glide_loop")
	a.Update(w)
	playSound(w, "glide_loop")
	a.Update(w)
	if !loop.playing || loop.plays != 1 || loop.volume != 0.07 {
		t.Fatalf("loop = %+v, want one play at cue volume", *loop)
	}

	stopSound(w, "glide_loop")
	a.Update(w)
	if loop.playing {
		t.Fatal("stop request should pause the loop")
	}
	if len(hook.Entries) != 0 {
		t.Fatalf("log entries = %+v", hook.AllEntries())
	}
}

func TestAudioWarnsOnceOnRewindError(t *testing.T) {
	w := ecs.NewWorld()
	addTestAudio(t, w)
	a, hook, _ := newTestAudio(t, false)
	jump := &fakeSound{rewindErr: errors.New("seek failed")}
	a.load = func(string, bool) (component.SoundPlayer, error) { return jump, nil }

	for i := 0; i < 3; i++ {
		playSound(w, "jump")
		a.Update(w)
	}

	if jump.plays != 3 {
		t.Fatalf("plays = %d, a failed rewind should still play", jump.plays)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("log entries = %+v", hook.AllEntries())
	}
	entry := hook.LastEntry()
	if entry.Data["cue"] != "jump" || entry.Data[logrus.ErrorKey] == nil {
		t.Fatalf("warning fields = %+v", entry.Data)
	}
}

func TestStopAllPausesCuesAndMusic(t *testing.T) {
	w := ecs.NewWorld()
	glide := &fakeSound{playing: true}
	jump := &fakeSound{}
	track := &fakeSound{playing: true}
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.AudioComponent, &component.Audio{
		Players: map[string]component.SoundPlayer{"glide_loop": glide, "jump": jump},
	})
	music := mustAdd(t, w, e, component.MusicComponent, &component.Music{File: "metropolis.ogg", Player: track, Started: true})

	StopAll(w)

	if glide.playing || track.playing {
		t.Fatalf("players still running: glide %v, music %v", glide.playing, track.playing)
	}
	if music.Started {
		t.Fatal("music should restart on the next update")
	}
	StopAll(nil)
}
