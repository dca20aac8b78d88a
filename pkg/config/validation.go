package config

import "fmt"

func (c *Config) validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", KeyChannelCount, c.Channels)
	}
	if c.SpeedOfSoundMPS <= 0 {
		return fmt.Errorf("%s must be positive, got %v", KeySpeedOfSoundMPS, c.SpeedOfSoundMPS)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", KeySmoothingWindow, c.SmoothingWindow)
	}
	if c.DoubleRisingPolicy != PolicyOverwrite && c.DoubleRisingPolicy != PolicyCountOverrun {
		return fmt.Errorf("%s must be %q or %q, got %q",
			KeyDoubleRisingPolicy, PolicyOverwrite, PolicyCountOverrun, c.DoubleRisingPolicy)
	}
	if c.ArmedTimeoutMS < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", KeyArmedTimeoutMS, c.ArmedTimeoutMS)
	}
	if c.Export.IntervalMS < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", KeyExportIntervalMS, c.Export.IntervalMS)
	}
	if c.Sim.PeriodMS < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", KeySimPeriodMS, c.Sim.PeriodMS)
	}
	if c.Sim.JitterUS < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", KeySimJitterUS, c.Sim.JitterUS)
	}
	if len(c.Sim.DistancesM) != c.Channels {
		return fmt.Errorf("%s has %d entries for %d channels",
			KeySimDistancesM, len(c.Sim.DistancesM), c.Channels)
	}
	for i, d := range c.Sim.DistancesM {
		if d < 0 {
			return fmt.Errorf("%s entry %d must be >= 0, got %v", KeySimDistancesM, i, d)
		}
	}
	if c.RunDurationSec < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", KeyRunDurationSec, c.RunDurationSec)
	}
	return nil
}
