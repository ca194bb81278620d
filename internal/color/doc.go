// Package color provides terminal styling for vgate's console output.
//
// Colors are organized into semantic categories that map onto test results:
//   - Success: passed cases, cases that will run
//   - Warning: skipped cases
//   - Error: failed cases
//   - Fatal: cases that errored (panic, timeout)
//   - Muted: de-emphasized text such as durations and constraints
//
// Styling is disabled when the NO_COLOR environment variable is set, or when
// Disable is called (for example when output is redirected to a file).
//
// # Usage Example
//
//	color.Initialize(true)
//	fmt.Println(color.Success.Render("PASSED"))
package color
