// Package monitor implements the live terminal view of the watch command.
//
// The view is a Bubble Tea program:
//
//  1. Init runs the first cycle immediately.
//  2. cycleMsg carries the parsed columns; the panels are redrawn and the
//     next tickMsg is scheduled.
//  3. tickMsg starts the next cycle.
//
// Ticks are scheduled only after a cycle completes, so at most one fetch is
// ever in flight and a slow board simply stretches the period.
//
// Each sample column gets a panel with its label as the title and a braille
// graph on a fixed 0 to 100 scale. Panels are stacked vertically inside a
// viewport that scrolls with the arrow keys or j/k.
package monitor
