package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *
var assetsFS embed.FS

// Dir is the on-disk directory checked before the embedded files.
const Dir = "assets"

const SampleRate = 44100

var (
	audioContext     *audio.Context
	audioContextOnce sync.Once
)

// AudioContext returns the process-wide audio context, creating it on first
// use so packages that never play sound never open the device.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an asset by assets-relative path, preferring the disk copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// LoadAudioPlayer decodes an ogg or wav asset into a one-shot player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	return loadPlayer(path, false)
}

// LoadLoopingAudioPlayer decodes an ogg or wav asset into a player that
// repeats until paused.
func LoadLoopingAudioPlayer(path string) (*audio.Player, error) {
	return loadPlayer(path, true)
}

type lengthStream interface {
	io.ReadSeeker
	Length() int64
}

func loadPlayer(path string, loop bool) (*audio.Player, error) {
	b, err := LoadAudio(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	stream, err := decode(ctx, path, b)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		// Fallback for already-decoded PCM assets in Ebiten's native format.
		if loop {
			return ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(b), int64(len(b))))
		}
		return ctx.NewPlayerFromBytes(b), nil
	}
	if loop {
		return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return ctx.NewPlayer(stream)
}

func decode(ctx *audio.Context, path string, b []byte) (lengthStream, error) {
	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	switch {
	case strings.HasSuffix(clean, ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		return stream, nil
	case strings.HasSuffix(clean, ".wav"):
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return stream, nil
	}
	return nil, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
