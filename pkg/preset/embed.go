package preset

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
)

//go:embed clips/*.json
var embeddedClips embed.FS

// LoadEmbedded loads a clip bundled with the package.
func LoadEmbedded(name string) (*clip.Clip, error) {
	data, err := embeddedClips.ReadFile(fmt.Sprintf("clips/%s.json", name))
	if err != nil {
		return nil, fmt.Errorf("embedded clip %q not found: %w", name, err)
	}
	return clip.Parse(name, data)
}

// ListEmbedded returns the names of all bundled clips.
func ListEmbedded() ([]string, error) {
	entries, err := embeddedClips.ReadDir("clips")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded clips: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return names, nil
}

// LoadAllEmbedded loads every bundled clip.
func LoadAllEmbedded() ([]*clip.Clip, error) {
	names, err := ListEmbedded()
	if err != nil {
		return nil, err
	}

	clips := make([]*clip.Clip, 0, len(names))
	for _, name := range names {
		c, err := LoadEmbedded(name)
		if err != nil {
			return nil, err
		}
		clips = append(clips, c)
	}
	return clips, nil
}
