package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/ratchet/assets"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/sirupsen/logrus"
)

type playerLoader func(path string, loop bool) (component.SoundPlayer, error)

func loadAssetPlayer(path string, loop bool) (component.SoundPlayer, error) {
	var (
		p   *audio.Player
		err error
	)
	if loop {
		p, err = assets.LoadLoopingAudioPlayer(path)
	} else {
		p, err = assets.LoadAudioPlayer(path)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AudioSystem plays the sound requests queued this frame against the
// player's cue table and keeps level music running.
type AudioSystem struct {
	log    logrus.FieldLogger
	muted  bool
	load   playerLoader
	failed map[string]bool
}

func NewAudioSystem(log logrus.FieldLogger, muted bool) *AudioSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AudioSystem{
		log:    log,
		muted:  muted,
		load:   loadAssetPlayer,
		failed: make(map[string]bool),
	}
}

func (a *AudioSystem) Muted() bool {
	return a.muted
}

// SetMuted silences or resumes all audio. Music restarts on the next update.
func (a *AudioSystem) SetMuted(w *ecs.World, muted bool) {
	if a.muted == muted {
		return
	}
	a.muted = muted
	if muted {
		StopAll(w)
	}
}

// StopAll pauses every cue and music player owned by w. Music is marked
// unstarted so it resumes on the next update.
func StopAll(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, comp *component.Audio) {
		for _, p := range comp.Players {
			if p != nil && p.IsPlaying() {
				p.Pause()
			}
		}
	})
	ecs.ForEach(w, component.MusicComponent.Kind(), func(_ ecs.Entity, m *component.Music) {
		if m.Player != nil {
			m.Player.Pause()
		}
		m.Started = false
	})
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	requests := w.Events().DrainType(ecs.EventSound)
	if a.muted {
		return
	}

	a.updateMusic(w)

	if len(requests) == 0 {
		return
	}
	owner, ok := ecs.First(w, component.AudioComponent.Kind())
	if !ok {
		return
	}
	comp, _ := ecs.Get(w, owner, component.AudioComponent.Kind())
	if comp.Players == nil {
		comp.Players = make(map[string]component.SoundPlayer)
	}

	for _, evt := range requests {
		req, ok := evt.Data.(component.SoundRequest)
		if !ok {
			continue
		}
		cue, ok := comp.Cues[req.Name]
		if !ok {
			a.warnOnce("cue:"+req.Name, logrus.Fields{"cue": req.Name}, nil, "unknown sound cue")
			continue
		}
		if req.Stop {
			if p := comp.Players[req.Name]; p != nil && p.IsPlaying() {
				p.Pause()
			}
			continue
		}
		p := a.player(comp, req.Name, cue)
		if p == nil {
			continue
		}
		if cue.Loop && p.IsPlaying() {
			continue
		}
		p.SetVolume(cue.Volume)
		if err := p.Rewind(); err != nil {
			a.warnOnce("rewind:"+req.Name, logrus.Fields{"cue": req.Name}, err, "rewind sound")
		}
		p.Play()
	}
}

func (a *AudioSystem) player(comp *component.Audio, name string, cue component.AudioCue) component.SoundPlayer {
	if p, ok := comp.Players[name]; ok {
		return p
	}
	if a.failed[cue.File] {
		return nil
	}
	p, err := a.load(cue.File, cue.Loop)
	if err != nil {
		a.warnOnce(cue.File, logrus.Fields{"cue": name, "file": cue.File}, err, "load sound")
		return nil
	}
	comp.Players[name] = p
	return p
}

func (a *AudioSystem) updateMusic(w *ecs.World) {
	ecs.ForEach(w, component.MusicComponent.Kind(), func(_ ecs.Entity, m *component.Music) {
		if m.Started || m.File == "" {
			return
		}
		m.Started = true
		if m.Player == nil {
			if a.failed[m.File] {
				return
			}
			p, err := a.load(m.File, true)
			if err != nil {
				a.warnOnce(m.File, logrus.Fields{"music": m.File}, err, "load music")
				return
			}
			m.Player = p
		}
		m.Player.SetVolume(m.Volume)
		m.Player.Play()
	})
}

func (a *AudioSystem) warnOnce(key string, fields logrus.Fields, err error, msg string) {
	if a.failed[key] {
		return
	}
	a.failed[key] = true
	entry := a.log.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}
