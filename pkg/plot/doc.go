// Package plot turns sampled stress fields into contour figures.
//
// A figure is a filled contour of one tensor component over the grid, with
// black iso-lines on every third level and a color bar carrying the same
// iso-line ticks. Figures are rasterized with gogpu/gg and written as PNG.
package plot
