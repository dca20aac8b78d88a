package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ranger.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestYAMLSource(t *testing.T) {
	path := writeTempConfig(t, `channel_count: 3
speed_of_sound_mps: 331.4
export_stats: true
bridge_url: ws://localhost:9000/ranger
`)

	src, err := NewYAMLSource(path)
	if err != nil {
		t.Fatalf("NewYAMLSource: %v", err)
	}

	if v, ok := src.GetInt(KeyChannelCount); !ok || v != 3 {
		t.Errorf("GetInt: expected 3/true, got %d/%v", v, ok)
	}
	if v, ok := src.GetFloat(KeySpeedOfSoundMPS); !ok || v != 331.4 {
		t.Errorf("GetFloat: expected 331.4/true, got %v/%v", v, ok)
	}
	if v, ok := src.GetBool(KeyExportStats); !ok || !v {
		t.Errorf("GetBool: expected true/true, got %v/%v", v, ok)
	}
	if v, ok := src.GetString(KeyBridgeURL); !ok || v != "ws://localhost:9000/ranger" {
		t.Errorf("GetString: expected url/true, got %q/%v", v, ok)
	}
	if _, ok := src.GetInt(KeyArmedTimeoutMS); ok {
		t.Error("expected miss for absent key")
	}
}

func TestYAMLSource_IntAsFloat(t *testing.T) {
	path := writeTempConfig(t, "speed_of_sound_mps: 343\n")

	src, err := NewYAMLSource(path)
	if err != nil {
		t.Fatalf("NewYAMLSource: %v", err)
	}
	if v, ok := src.GetFloat(KeySpeedOfSoundMPS); !ok || v != 343.0 {
		t.Errorf("expected integer yaml value to resolve as float, got %v/%v", v, ok)
	}
}

func TestYAMLSource_Errors(t *testing.T) {
	if _, err := NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeTempConfig(t, "channel_count: [not: closed\n")
	if _, err := NewYAMLSource(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
