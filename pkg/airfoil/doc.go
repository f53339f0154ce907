// Package airfoil generates NACA airfoil coordinate loops.
//
// Every generator evaluates the published closed-form shape equations over a
// cosine-spaced chordwise grid and returns a point loop that runs from the
// trailing edge over the upper surface to the leading edge and back along the
// lower surface. Each result carries a content fingerprint of its raw
// coordinates.
//
// The symmetric 6-series family is not computed analytically. It is obtained
// by linearly rescaling a stored base shape read from a BaseLibrary, which is
// an approximation of the tabulated sections.
package airfoil
