// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Observability filtering: altitude, twilight and lunar constraints, TOML site registry
// 0.1.0 - Initial release: Simbad resolution, Exoplanet Archive crossmatch, next-transit prediction, transit board TUI
