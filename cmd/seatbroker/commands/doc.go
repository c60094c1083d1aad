// Package commands defines the seatbroker CLI and wires dependencies for subcommands.
//
// Commands
//
//   - whoami   Print the session, seat and session object path of this process
//   - session  Take control of the session and hold it until interrupted
//   - take     Take device nodes, report their numbers and paused state, release them
//   - switch   Switch the seat to another virtual terminal
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (runtime store, bus dialer, services) before any subcommand runs. Every
// bus-facing command starts the session once and ends it exactly once, even
// when a step in between fails.
package commands
