package config

// Configuration key constants
// These constants centralize all environment variable and configuration key names
// to eliminate magic strings and improve maintainability.

const (
	// Core measurement configuration keys
	KeyChannelCount       = "CHANNEL_COUNT"
	KeySpeedOfSoundMPS    = "SPEED_OF_SOUND_MPS"
	KeySmoothingWindow    = "SMOOTHING_WINDOW"
	KeyDoubleRisingPolicy = "DOUBLE_RISING_POLICY"
	KeyArmedTimeoutMS     = "ARMED_TIMEOUT_MS"

	// Export configuration keys
	KeyExportIntervalMS = "EXPORT_INTERVAL_MS"
	KeyExportStats      = "EXPORT_STATS"
	KeyJSONLPath        = "JSONL_PATH"
	KeyCSVPath          = "CSV_PATH"

	// Bridge configuration keys
	KeyBridgeURL = "BRIDGE_URL"

	// Simulated source configuration keys
	KeySimPeriodMS    = "SIM_PERIOD_MS"
	KeySimDistancesM  = "SIM_DISTANCES_M"
	KeySimJitterUS    = "SIM_JITTER_US"
	KeyRunDurationSec = "RUN_DURATION_SEC"

	// UI configuration keys
	KeyDashboard = "DASHBOARD"
)

// Default values for configuration
const (
	DefaultChannelCount       = 5
	DefaultSpeedOfSoundMPS    = 343.0
	DefaultSmoothingWindow    = 5
	DefaultDoubleRisingPolicy = PolicyOverwrite
	DefaultArmedTimeoutMS     = 100

	// 50 ms between exports, ~20 Hz
	DefaultExportIntervalMS = 50

	DefaultSimPeriodMS = 60
	DefaultSimJitterUS = 0
)

// Double-rising policy values
const (
	PolicyOverwrite    = "overwrite"
	PolicyCountOverrun = "overrun"
)

// CLI flag name constants
const (
	FlagChannelCount       = "channels"
	FlagSpeedOfSoundMPS    = "speed-of-sound"
	FlagSmoothingWindow    = "smoothing-window"
	FlagDoubleRisingPolicy = "double-rising-policy"
	FlagArmedTimeoutMS     = "armed-timeout-ms"
	FlagExportIntervalMS   = "export-interval-ms"
	FlagExportStats        = "export-stats"
	FlagJSONLPath          = "jsonl"
	FlagCSVPath            = "csv"
	FlagBridgeURL          = "bridge-url"
	FlagSimPeriodMS        = "sim-period-ms"
	FlagSimDistancesM      = "sim-distances"
	FlagSimJitterUS        = "sim-jitter-us"
	FlagRunDurationSec     = "duration"
	FlagDashboard          = "dashboard"
	FlagConfigFile         = "config"
	FlagHelp               = "help"
)

// Help message constants
const (
	AppName        = "ranger"
	AppDescription = "Multi-channel ultrasonic ranger: pulse timing, smoothing and snapshot export"
	UsageFormat    = "ranger [OPTIONS]"

	HelpChannelCount       = "Number of echo channels"
	HelpSpeedOfSoundMPS    = "Speed of sound in m/s"
	HelpSmoothingWindow    = "Median smoothing window size"
	HelpDoubleRisingPolicy = "Second rising edge policy: overwrite|overrun"
	HelpArmedTimeoutMS     = "Stuck-channel timeout in milliseconds"
	HelpExportIntervalMS   = "Minimum interval between exports in milliseconds"
	HelpExportStats        = "Also print the seq/pulses/overruns stats line"
	HelpJSONLPath          = "JSONL output path (empty = stdout only)"
	HelpCSVPath            = "CSV output path (optional)"
	HelpBridgeURL          = "Downstream bridge websocket URL (empty = bridge off)"
	HelpSimPeriodMS        = "Simulated ping period per channel in milliseconds"
	HelpSimDistancesM      = "Simulated target distances in meters, comma-separated"
	HelpSimJitterUS        = "Simulated pulse width jitter in microseconds"
	HelpRunDurationSec     = "Run duration in seconds (0 = run until interrupted)"
	HelpDashboard          = "Show the live terminal dashboard"
	HelpConfigFile         = "YAML configuration file path"
	HelpShowHelp           = "Show this help message"

	// Help section headers
	HelpOptions         = "Options:"
	HelpEnvironmentVars = "Environment Variables:"
	HelpUsage           = "Usage:"
	HelpNote            = "Note: CLI options override environment variables, which override the config file"
)
