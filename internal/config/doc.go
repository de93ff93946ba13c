// Package config loads botplot's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/botplot/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command line flags are applied by the caller on top of the loaded Config.
//
// # Default Values
//
//   - Record file: ~/bitfighter/exe/screenshots/record
//   - Telemetry file: none
//   - Refresh interval: 3s
//   - Visible window: 2000 samples
//   - Flat overlays: mean:100, mean:1000
//   - Telemetry overlays: none
//   - Log file: ~/.local/state/botplot/botplot.log (level info, console format)
//   - Stream readiness timeout: 100ms
//
// # TOML Format
//
//	record_path = "~/bitfighter/exe/screenshots/record"
//	telemetry_path = "~/bitfighter/exe/screenshots/telemetry"
//	refresh_interval = "3s"
//	visible_window = 2000
//	flat_overlays = ["mean:100", "mean:1000"]
//	telemetry_overlays = ["mean:50"]
//	flat_y_range = [0.0, 1.5]
//	log_path = "~/.local/state/botplot/botplot.log"
//	log_level = "debug"
//
// Overlays are written kind:window where kind is sum or mean. An explicit
// empty flat_overlays list disables smoothing of the record series. A record
// or telemetry path of "-" reads that source from stdin.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML syntax errors, and invalid values (bad durations,
// negative windows, malformed overlay specs). A missing file is not an error.
package config
