// Package cliconfig provides configuration for the itemd client commands.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (ITEMD_URL, ITEMD_TIMEOUT, ITEMD_JSON)
//  3. Local config file (.itemdrc.yaml in the current directory)
//  4. Global config file (<user config dir>/itemd/config.yaml)
//  5. Default values
//
// It tracks the source of each value so `itemd config` can explain where a
// setting came from.
package cliconfig
