// Package design defines the wing layout produced by script evaluation:
// an ordered set of named sections, each placing an airfoil profile at a
// spanwise station with a chord, twist and panel span.
package design
