package parameter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the current on-disk format version
const SnapshotVersion = 1

// Snapshot is the persisted form of a parameter set
type Snapshot struct {
	Version int    `yaml:"version"`
	Params  Params `yaml:"params"`
}

// MarshalSnapshot encodes p as a versioned YAML document
func MarshalSnapshot(p Params) ([]byte, error) {
	data, err := yaml.Marshal(Snapshot{Version: SnapshotVersion, Params: p})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a YAML document over Default() and validates the result
func UnmarshalSnapshot(data []byte) (Params, error) {
	snap := Snapshot{Params: Default()}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Params{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return Params{}, fmt.Errorf("snapshot version %d is newer than supported %d", snap.Version, SnapshotVersion)
	}
	if err := snap.Params.Validate(); err != nil {
		return Params{}, err
	}
	return snap.Params, nil
}

// SaveSnapshot writes p to path
func SaveSnapshot(path string, p Params) error {
	data, err := MarshalSnapshot(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and validates the parameter set at path
func LoadSnapshot(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read snapshot: %w", err)
	}
	return UnmarshalSnapshot(data)
}
