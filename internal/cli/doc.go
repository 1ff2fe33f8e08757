// Package cli implements the bwstat command-line interface.
//
// Each Cobra command parses its flags into an options struct and hands it
// to a plain function (Snapshot, Watch, Init, Doctor) that does the work,
// so the commands can be driven from tests without going through Cobra.
//
// # Command Structure
//
//	bwstat snapshot [OPTION FILE]  - Fetch once, print the table, plot the overlay
//	bwstat watch                   - Fetch and graph every refreshrate seconds
//	bwstat init                    - Create config.yaml or configstat.yaml
//	bwstat doctor                  - Check config, keys and the board
//	bwstat version                 - Print build information
//
// # Configuration
//
// watch reads config.yaml and snapshot reads configstat.yaml from the working
// directory (TOML and JSON are accepted too); --config overrides both.
// Global flags (--config, --verbose, --no-color) live on the root command.
package cli
