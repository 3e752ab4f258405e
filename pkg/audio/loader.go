package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

var errNoDefaultSound = errors.New("no default sound bundled")

// Loader resolves sound references to file contents
type Loader struct {
	defaultSound []byte
}

// NewLoader creates a Loader serving defaultSound for models.DefaultSound
func NewLoader(defaultSound []byte) *Loader {
	return &Loader{defaultSound: defaultSound}
}

// Load returns the raw bytes of sound. An empty reference means the default sound.
func (l *Loader) Load(sound string) ([]byte, error) {
	if sound == "" || sound == models.DefaultSound {
		if len(l.defaultSound) == 0 {
			return nil, errNoDefaultSound
		}
		return l.defaultSound, nil
	}

	data, err := os.ReadFile(filepath.Clean(sound))
	if err != nil {
		return nil, fmt.Errorf("load sound %q: %w", sound, err)
	}
	return data, nil
}

// Check reports whether sound can be loaded without reading it
func (l *Loader) Check(sound string) error {
	if sound == "" || sound == models.DefaultSound {
		if len(l.defaultSound) == 0 {
			return errNoDefaultSound
		}
		return nil
	}

	info, err := os.Stat(filepath.Clean(sound))
	if err != nil {
		return fmt.Errorf("load sound %q: %w", sound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("load sound %q: is a directory", sound)
	}
	return nil
}
