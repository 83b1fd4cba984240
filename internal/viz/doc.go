// Package viz draws figures in the terminal and hosts the interactive
// slider views.
//
// Line panels go through asciigraph after resampling onto the chart width.
// Parametric, equal-aspect and 3D panels use a braille [Canvas]; 3D panels
// are projected by a [Camera]. Bars become sparklines and images a shaded
// strip.
//
// # Key Bindings
//
//	Tab, Shift+Tab - select slider
//	H/L, Left/Right - step slider
//	J/K, Down/Up   - step slider x10
//	1-9            - show or hide a series
//	R              - reset sliders
//	Space          - pause an animated demo
//	S              - save a PNG snapshot
//	Y/P, +/-       - rotate and zoom 3D panels
//	T              - cycle color themes
//	?              - help
package viz
