// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Headless summary, JSON snapshot and mini map; ORRERY_* env config
// 0.2.0 - Synthesized audio cues, mouse picking, wheel zoom, pause
// 0.1.0 - Initial release: animated orbits, moons, starfield, speed ladder

// String returns the version banner printed by -version.
func String() string {
	return fmt.Sprintf("ls-orrery v%s", Version)
}
