// Package config loads runtime configuration for authctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the login API
//	-t int      request timeout (seconds)
//	-s string   session directory
//
// # JSON schema
//
//	{
//	  "server_url": "https://epc.ub.uu.se/login/rest/",
//	  "request_timeout": "5s",
//	  "session_dir": ".authctl"
//	}
//
// Unlike the server, this package does not read AUTHGATE_CONFIG.
package config
