package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Channels           int
	SpeedOfSoundMPS    float64
	SmoothingWindow    int
	DoubleRisingPolicy string
	ArmedTimeoutMS     int
	Export             ExportConfig
	Bridge             BridgeConfig
	Sim                SimConfig
	RunDurationSec     int
	Dashboard          bool
}

type ExportConfig struct {
	IntervalMS int
	Stats      bool
	JSONLPath  string
	CSVPath    string
}

type BridgeConfig struct {
	URL string
}

type SimConfig struct {
	PeriodMS   int
	DistancesM []float64
	JitterUS   int
}

// Load loads configuration from CLI flags, environment variables and an
// optional YAML file. Precedence: CLI flags > environment > file.
func Load() (*Config, error) {
	flagSource, configPath, showHelp, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		return nil, err
	}

	if showHelp {
		printUsage()
		return nil, nil // Return nil to indicate help was shown
	}

	sources := []ConfigSource{flagSource, &EnvSource{}}
	if configPath != "" {
		fileSource, err := NewYAMLSource(configPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSource)
	}
	resolver := NewConfigResolver(sources...)

	cfg := &Config{
		Channels:           resolver.ResolveInt(KeyChannelCount, DefaultChannelCount),
		SpeedOfSoundMPS:    resolver.ResolveFloat(KeySpeedOfSoundMPS, DefaultSpeedOfSoundMPS),
		SmoothingWindow:    resolver.ResolveInt(KeySmoothingWindow, DefaultSmoothingWindow),
		DoubleRisingPolicy: resolver.ResolveString(KeyDoubleRisingPolicy, DefaultDoubleRisingPolicy),
		ArmedTimeoutMS:     resolver.ResolveInt(KeyArmedTimeoutMS, DefaultArmedTimeoutMS),
		Export: ExportConfig{
			IntervalMS: resolver.ResolveInt(KeyExportIntervalMS, DefaultExportIntervalMS),
			Stats:      resolver.ResolveBool(KeyExportStats, false),
			JSONLPath:  resolver.ResolveString(KeyJSONLPath, ""),
			CSVPath:    resolver.ResolveString(KeyCSVPath, ""),
		},
		Bridge: BridgeConfig{
			URL: resolver.ResolveString(KeyBridgeURL, ""),
		},
		Sim: SimConfig{
			PeriodMS: resolver.ResolveInt(KeySimPeriodMS, DefaultSimPeriodMS),
			JitterUS: resolver.ResolveInt(KeySimJitterUS, DefaultSimJitterUS),
		},
		RunDurationSec: resolver.ResolveInt(KeyRunDurationSec, 0),
		Dashboard:      resolver.ResolveBool(KeyDashboard, false),
	}

	distances := resolver.ResolveString(KeySimDistancesM, "")
	if distances != "" {
		parsed, err := ParseDistances(distances)
		if err != nil {
			return nil, err
		}
		cfg.Sim.DistancesM = parsed
	} else {
		cfg.Sim.DistancesM = defaultDistances(cfg.Channels)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseDistances parses a comma-separated list of meters, e.g. "0.5,1.2,0.8".
func ParseDistances(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid distance %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// defaultDistances spreads simulated targets so channels are visually
// distinguishable out of the box.
func defaultDistances(channels int) []float64 {
	out := make([]float64, channels)
	for i := range out {
		out[i] = 0.25 + 0.25*float64(i)
	}
	return out
}
