package config

import "testing"

func TestEnvSource(t *testing.T) {
	t.Setenv("CHANNEL_COUNT", "7")
	t.Setenv("SPEED_OF_SOUND_MPS", "331.4")
	t.Setenv("DASHBOARD", "true")
	t.Setenv("JSONL_PATH", "/tmp/r.jsonl")

	e := &EnvSource{}

	if v, ok := e.GetInt(KeyChannelCount); !ok || v != 7 {
		t.Errorf("GetInt: expected 7/true, got %d/%v", v, ok)
	}
	if v, ok := e.GetFloat(KeySpeedOfSoundMPS); !ok || v != 331.4 {
		t.Errorf("GetFloat: expected 331.4/true, got %v/%v", v, ok)
	}
	if v, ok := e.GetBool(KeyDashboard); !ok || !v {
		t.Errorf("GetBool: expected true/true, got %v/%v", v, ok)
	}
	if v, ok := e.GetString(KeyJSONLPath); !ok || v != "/tmp/r.jsonl" {
		t.Errorf("GetString: expected path/true, got %q/%v", v, ok)
	}
	if _, ok := e.GetInt(KeyArmedTimeoutMS); ok {
		t.Error("expected miss for unset variable")
	}
}

func TestEnvSource_MalformedValues(t *testing.T) {
	t.Setenv("CHANNEL_COUNT", "not-a-number")
	t.Setenv("DASHBOARD", "maybe")

	e := &EnvSource{}
	if _, ok := e.GetInt(KeyChannelCount); ok {
		t.Error("expected miss for malformed int")
	}
	if _, ok := e.GetBool(KeyDashboard); ok {
		t.Error("expected miss for malformed bool")
	}
}

func TestFlagSource_TypeMismatchIsMiss(t *testing.T) {
	f := NewFlagSource()
	f.Set(KeyChannelCount, "five") // wrong type on purpose
	if _, ok := f.GetInt(KeyChannelCount); ok {
		t.Error("expected miss for mistyped value")
	}
}
