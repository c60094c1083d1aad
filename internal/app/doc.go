// Package app wires application dependencies for the CLI.
//
// It loads Config through viper (file plus SEATBROKER_* environment), builds
// the zerolog logger, and constructs the runtime store, bus dialer and
// services, exposing them via the Wire struct for commands to use.
package app
