// Package config handles oracle and probe configuration.
//
// Values are layered: built-in defaults, then an optional YAML file (with
// ${VAR} interpolation), then environment variables such as
// SOFTWARE_WS_PORT and ORACLE_NOISE.
package config
