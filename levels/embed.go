package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is the on-disk directory whose files shadow the embedded levels.
const Dir = "levels"

const DefaultLevel = "metropolis"

type Level struct {
	Name  string     `yaml:"name"`
	Spawn [3]float32 `yaml:"spawn"`
	KillY float32    `yaml:"kill_y"`
	Music Music      `yaml:"music"`
	Boxes []Box      `yaml:"boxes"`

	Crates []Placement `yaml:"crates"`
	Bolts  []Placement `yaml:"bolts"`
}

type Music struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// Box is an axis-aligned solid. Normal is the walkable normal of its top face.
type Box struct {
	Min    [3]float32 `yaml:"min"`
	Max    [3]float32 `yaml:"max"`
	Normal [3]float32 `yaml:"normal"`
}

type Placement struct {
	Position [3]float32 `yaml:"position"`
	Prefab   string     `yaml:"prefab"`
}

func (l *Level) SpawnPoint() mgl32.Vec3 {
	return mgl32.Vec3(l.Spawn)
}

// Load reads levels/<name>.yaml from disk when present, else from the embed.
func Load(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	file := filepath.ToSlash(name)
	file = strings.TrimPrefix(file, Dir+"/")
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}

	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(file)))
	if err != nil {
		data, err = LevelsFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read level %q: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	for i, b := range l.Boxes {
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] >= b.Max[axis] {
				return fmt.Errorf("level %q: box %d: min %v not below max %v", l.Name, i, b.Min, b.Max)
			}
		}
	}
	return nil
}
