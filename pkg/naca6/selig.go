package naca6

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// ParseSelig reads a coordinate file in Selig format: a name line followed by
// one "x y" pair per line, running from the trailing edge over the upper
// surface and back along the lower surface. Blank lines and lines starting
// with '#' are skipped.
func ParseSelig(r io.Reader) (name string, pts []airfoil.Point, err error) {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if name == "" && pts == nil {
			if _, _, ok := parsePair(text); !ok {
				name = text
				continue
			}
		}
		x, y, ok := parsePair(text)
		if !ok {
			return "", nil, fmt.Errorf("line %d: expected \"x y\", got %q", line, text)
		}
		if x > 1.5 && y > 1.5 {
			return "", nil, fmt.Errorf("line %d: looks like a Lednicer point-count header, only Selig ordering is supported", line)
		}
		pts = append(pts, airfoil.Point{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return "", nil, err
	}
	return name, pts, nil
}

func parsePair(s string) (x, y float64, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(fields[0], 64)
	y, errY := strconv.ParseFloat(fields[1], 64)
	return x, y, errX == nil && errY == nil
}
