// Package config loads the kiosk configuration.
//
// # Overview
//
// Settings come from a TOML file, then from the environment. The file is
// optional: a fresh Raspberry Pi with no config shows the default location and
// only needs an API key, which is usually supplied through the environment or
// a .env file next to the binary.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. ~/.config/weatherpi/config.toml, or the path given with -config
//  3. .env in the working directory (never overrides variables already set)
//  4. WEATHERPI_API_KEY, WEATHERPI_LOCATION and LOG_LEVEL
//
// # TOML Format
//
//	location = "New York"
//	api_key = "..."
//	weather_refresh = 600        # seconds, must be > 0
//	request_timeout = 0          # seconds, 0 keeps the transport default
//	asset_dir = "./images"
//	fallback_icon = "3200.png"
//	fetch_error_policy = "exit"  # or "keep"
//	theme = "Nightfox"
//	log_file = "~/.local/state/weatherpi/weatherpi.log"
//	log_level = "info"
//	metrics_addr = ""            # e.g. ":9100"; empty disables the listener
//
// Tilde expansion is applied to asset_dir and log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and values
// that fail Validate. A missing file is not an error.
package config
