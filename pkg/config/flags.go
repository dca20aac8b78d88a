package config

import (
	"flag"
	"fmt"
)

// parseCLIFlags parses command-line flags and returns a FlagSource, the
// config file path (if any) and the help flag. Only flags the user
// actually passed land in the FlagSource, so an explicit zero reaches
// validation instead of silently falling through to the defaults.
func parseCLIFlags(args []string) (*FlagSource, string, bool, error) {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)

	channels := fs.Int(FlagChannelCount, DefaultChannelCount, HelpChannelCount)
	speedOfSound := fs.Float64(FlagSpeedOfSoundMPS, DefaultSpeedOfSoundMPS, HelpSpeedOfSoundMPS)
	smoothingWindow := fs.Int(FlagSmoothingWindow, DefaultSmoothingWindow, HelpSmoothingWindow)
	doubleRisingPolicy := fs.String(FlagDoubleRisingPolicy, DefaultDoubleRisingPolicy, HelpDoubleRisingPolicy)
	armedTimeoutMS := fs.Int(FlagArmedTimeoutMS, DefaultArmedTimeoutMS, HelpArmedTimeoutMS)
	exportIntervalMS := fs.Int(FlagExportIntervalMS, DefaultExportIntervalMS, HelpExportIntervalMS)
	exportStats := fs.Bool(FlagExportStats, false, HelpExportStats)
	jsonlPath := fs.String(FlagJSONLPath, "", HelpJSONLPath)
	csvPath := fs.String(FlagCSVPath, "", HelpCSVPath)
	bridgeURL := fs.String(FlagBridgeURL, "", HelpBridgeURL)
	simPeriodMS := fs.Int(FlagSimPeriodMS, DefaultSimPeriodMS, HelpSimPeriodMS)
	simDistances := fs.String(FlagSimDistancesM, "", HelpSimDistancesM)
	simJitterUS := fs.Int(FlagSimJitterUS, DefaultSimJitterUS, HelpSimJitterUS)
	duration := fs.Int(FlagRunDurationSec, 0, HelpRunDurationSec)
	dashboard := fs.Bool(FlagDashboard, false, HelpDashboard)
	configFile := fs.String(FlagConfigFile, "", HelpConfigFile)
	help := fs.Bool(FlagHelp, false, HelpShowHelp)

	if err := fs.Parse(args); err != nil {
		return nil, "", false, err
	}

	flagSource := NewFlagSource()
	if *help {
		return flagSource, "", true, nil
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case FlagChannelCount:
			flagSource.Set(KeyChannelCount, *channels)
		case FlagSpeedOfSoundMPS:
			flagSource.Set(KeySpeedOfSoundMPS, *speedOfSound)
		case FlagSmoothingWindow:
			flagSource.Set(KeySmoothingWindow, *smoothingWindow)
		case FlagDoubleRisingPolicy:
			flagSource.Set(KeyDoubleRisingPolicy, *doubleRisingPolicy)
		case FlagArmedTimeoutMS:
			flagSource.Set(KeyArmedTimeoutMS, *armedTimeoutMS)
		case FlagExportIntervalMS:
			flagSource.Set(KeyExportIntervalMS, *exportIntervalMS)
		case FlagExportStats:
			flagSource.Set(KeyExportStats, *exportStats)
		case FlagJSONLPath:
			flagSource.Set(KeyJSONLPath, *jsonlPath)
		case FlagCSVPath:
			flagSource.Set(KeyCSVPath, *csvPath)
		case FlagBridgeURL:
			flagSource.Set(KeyBridgeURL, *bridgeURL)
		case FlagSimPeriodMS:
			flagSource.Set(KeySimPeriodMS, *simPeriodMS)
		case FlagSimDistancesM:
			flagSource.Set(KeySimDistancesM, *simDistances)
		case FlagSimJitterUS:
			flagSource.Set(KeySimJitterUS, *simJitterUS)
		case FlagRunDurationSec:
			flagSource.Set(KeyRunDurationSec, *duration)
		case FlagDashboard:
			flagSource.Set(KeyDashboard, *dashboard)
		}
	})

	return flagSource, *configFile, false, nil
}

// printUsage prints the usage message
func printUsage() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Printf("%s\n", HelpUsage)
	fmt.Printf("  %s\n", UsageFormat)
	fmt.Println()
	fmt.Printf("%s\n", HelpOptions)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagChannelCount+" int", HelpChannelCount, DefaultChannelCount)
	fmt.Printf("  --%-22s %s (default: %.1f)\n", FlagSpeedOfSoundMPS+" float", HelpSpeedOfSoundMPS, DefaultSpeedOfSoundMPS)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagSmoothingWindow+" int", HelpSmoothingWindow, DefaultSmoothingWindow)
	fmt.Printf("  --%-22s %s (default: %s)\n", FlagDoubleRisingPolicy+" string", HelpDoubleRisingPolicy, DefaultDoubleRisingPolicy)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagArmedTimeoutMS+" int", HelpArmedTimeoutMS, DefaultArmedTimeoutMS)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagExportIntervalMS+" int", HelpExportIntervalMS, DefaultExportIntervalMS)
	fmt.Printf("  --%-22s %s\n", FlagExportStats, HelpExportStats)
	fmt.Printf("  --%-22s %s\n", FlagJSONLPath+" string", HelpJSONLPath)
	fmt.Printf("  --%-22s %s\n", FlagCSVPath+" string", HelpCSVPath)
	fmt.Printf("  --%-22s %s\n", FlagBridgeURL+" string", HelpBridgeURL)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagSimPeriodMS+" int", HelpSimPeriodMS, DefaultSimPeriodMS)
	fmt.Printf("  --%-22s %s\n", FlagSimDistancesM+" string", HelpSimDistancesM)
	fmt.Printf("  --%-22s %s (default: %d)\n", FlagSimJitterUS+" int", HelpSimJitterUS, DefaultSimJitterUS)
	fmt.Printf("  --%-22s %s\n", FlagRunDurationSec+" int", HelpRunDurationSec)
	fmt.Printf("  --%-22s %s\n", FlagDashboard, HelpDashboard)
	fmt.Printf("  --%-22s %s\n", FlagConfigFile+" string", HelpConfigFile)
	fmt.Printf("  --%-22s %s\n", FlagHelp, HelpShowHelp)
	fmt.Println()
	fmt.Printf("%s\n", HelpEnvironmentVars)
	fmt.Printf("  %-24s %s\n", KeyChannelCount, HelpChannelCount)
	fmt.Printf("  %-24s %s\n", KeySpeedOfSoundMPS, HelpSpeedOfSoundMPS)
	fmt.Printf("  %-24s %s\n", KeySmoothingWindow, HelpSmoothingWindow)
	fmt.Printf("  %-24s %s\n", KeyDoubleRisingPolicy, HelpDoubleRisingPolicy)
	fmt.Printf("  %-24s %s\n", KeyArmedTimeoutMS, HelpArmedTimeoutMS)
	fmt.Printf("  %-24s %s\n", KeyExportIntervalMS, HelpExportIntervalMS)
	fmt.Printf("  %-24s %s\n", KeyExportStats, HelpExportStats)
	fmt.Printf("  %-24s %s\n", KeyJSONLPath, HelpJSONLPath)
	fmt.Printf("  %-24s %s\n", KeyCSVPath, HelpCSVPath)
	fmt.Printf("  %-24s %s\n", KeyBridgeURL, HelpBridgeURL)
	fmt.Printf("  %-24s %s\n", KeySimPeriodMS, HelpSimPeriodMS)
	fmt.Printf("  %-24s %s\n", KeySimDistancesM, HelpSimDistancesM)
	fmt.Printf("  %-24s %s\n", KeySimJitterUS, HelpSimJitterUS)
	fmt.Printf("  %-24s %s\n", KeyRunDurationSec, HelpRunDurationSec)
	fmt.Printf("  %-24s %s\n", KeyDashboard, HelpDashboard)
	fmt.Println()
	fmt.Printf("%s\n", HelpNote)
}
