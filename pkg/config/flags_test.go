package config

import "testing"

func TestParseCLIFlags_ExplicitZeroIsKept(t *testing.T) {
	src, _, help, err := parseCLIFlags([]string{
		"--channels", "0",
		"--speed-of-sound", "0",
		"--smoothing-window", "0",
		"--armed-timeout-ms", "0",
		"--export-interval-ms", "0",
	})
	if err != nil {
		t.Fatalf("parseCLIFlags: %v", err)
	}
	if help {
		t.Fatal("help must not trigger")
	}

	intKeys := []string{KeyChannelCount, KeySmoothingWindow, KeyArmedTimeoutMS, KeyExportIntervalMS}
	for _, key := range intKeys {
		if v, ok := src.GetInt(key); !ok || v != 0 {
			t.Errorf("%s: expected explicit 0 to be recorded, got %d/%v", key, v, ok)
		}
	}
	if v, ok := src.GetFloat(KeySpeedOfSoundMPS); !ok || v != 0 {
		t.Errorf("%s: expected explicit 0 to be recorded, got %v/%v", KeySpeedOfSoundMPS, v, ok)
	}
}

func TestParseCLIFlags_UnsetFlagsStayUnset(t *testing.T) {
	src, configPath, help, err := parseCLIFlags([]string{"--channels", "3"})
	if err != nil {
		t.Fatalf("parseCLIFlags: %v", err)
	}
	if help || configPath != "" {
		t.Fatalf("unexpected help=%v configPath=%q", help, configPath)
	}

	if v, ok := src.GetInt(KeyChannelCount); !ok || v != 3 {
		t.Errorf("expected channels 3, got %d/%v", v, ok)
	}
	if _, ok := src.GetInt(KeySmoothingWindow); ok {
		t.Error("flag not passed must not appear in the source")
	}
	if _, ok := src.GetFloat(KeySpeedOfSoundMPS); ok {
		t.Error("flag not passed must not appear in the source")
	}
}

func TestParseCLIFlags_ExplicitZeroFailsValidation(t *testing.T) {
	src, _, _, err := parseCLIFlags([]string{"--channels", "0"})
	if err != nil {
		t.Fatalf("parseCLIFlags: %v", err)
	}

	r := NewConfigResolver(src)
	cfg := &Config{
		Channels:           r.ResolveInt(KeyChannelCount, DefaultChannelCount),
		SpeedOfSoundMPS:    r.ResolveFloat(KeySpeedOfSoundMPS, DefaultSpeedOfSoundMPS),
		SmoothingWindow:    r.ResolveInt(KeySmoothingWindow, DefaultSmoothingWindow),
		DoubleRisingPolicy: r.ResolveString(KeyDoubleRisingPolicy, DefaultDoubleRisingPolicy),
		ArmedTimeoutMS:     r.ResolveInt(KeyArmedTimeoutMS, DefaultArmedTimeoutMS),
		Export:             ExportConfig{IntervalMS: r.ResolveInt(KeyExportIntervalMS, DefaultExportIntervalMS)},
		Sim:                SimConfig{PeriodMS: DefaultSimPeriodMS, DistancesM: defaultDistances(0)},
	}
	if err := cfg.validate(); err == nil {
		t.Error("expected --channels 0 to fail validation")
	}
}

func TestParseCLIFlags_MalformedValueErrors(t *testing.T) {
	if _, _, _, err := parseCLIFlags([]string{"--channels", "five"}); err == nil {
		t.Error("expected parse error for malformed int flag")
	}
}

func TestParseCLIFlags_ConfigAndHelp(t *testing.T) {
	_, configPath, _, err := parseCLIFlags([]string{"--config", "/etc/ranger.yaml"})
	if err != nil {
		t.Fatalf("parseCLIFlags: %v", err)
	}
	if configPath != "/etc/ranger.yaml" {
		t.Errorf("expected config path, got %q", configPath)
	}

	_, _, help, err := parseCLIFlags([]string{"--help"})
	if err != nil {
		t.Fatalf("parseCLIFlags: %v", err)
	}
	if !help {
		t.Error("expected help flag to be reported")
	}
}
