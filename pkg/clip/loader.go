package clip

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// clipData is the raw JSON structure of a clip file.
type clipData struct {
	Name      string         `json:"name"`
	FPS       float64        `json:"fps"`
	Loop      *bool          `json:"loop"`
	LoopMode  string         `json:"loop_mode"`
	Keyframes []keyframeData `json:"keyframes"`
}

type keyframeData struct {
	Time       float64            `json:"time"`
	BoneAngles map[string]float64 `json:"bone_angles"`
	Easing     string             `json:"easing"`
}

// Parse parses clip JSON. The given name is a fallback used when the
// document does not carry one. Missing fields take the authoring
// defaults: 24 fps, looping, linear easing.
func Parse(name string, data []byte) (*Clip, error) {
	var raw clipData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse clip JSON: %w", err)
	}

	if raw.Name != "" {
		name = raw.Name
	}
	if len(raw.Keyframes) == 0 {
		return nil, fmt.Errorf("%w: clip %q has no keyframes", ErrInvalidClip, name)
	}

	c := New(name)
	if raw.FPS > 0 {
		c.FPS = raw.FPS
	}
	if raw.Loop != nil {
		c.Loop = *raw.Loop
	}
	if raw.LoopMode != "" {
		mode, err := ParseLoopMode(raw.LoopMode)
		if err != nil {
			return nil, err
		}
		c.Mode = mode
	}

	for _, kd := range raw.Keyframes {
		kf := Keyframe{Time: kd.Time, Angles: make(Pose, len(kd.BoneAngles))}
		if kd.Easing != "" {
			easing, err := ParseEasing(kd.Easing)
			if err != nil {
				return nil, err
			}
			kf.Easing = easing
		}
		for key, angle := range kd.BoneAngles {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("%w: clip %q has non-integer bone id %q", ErrInvalidClip, name, key)
			}
			kf.Angles[rig.BoneID(id)] = angle
		}
		if err := c.AddKeyframe(kf); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// LoadFile loads a clip from a JSON file on disk. The clip name falls
// back to the file name without its extension.
func LoadFile(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), ".json")
	return Parse(name, data)
}

// LoadDirectory loads all clips from a directory. Useful for loading
// custom clip packs at startup.
func LoadDirectory(dir string) ([]*Clip, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list clip files: %w", err)
	}

	var clips []*Clip
	for _, file := range files {
		c, err := LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		clips = append(clips, c)
	}

	return clips, nil
}
