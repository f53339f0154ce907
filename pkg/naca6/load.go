package naca6

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// yamlDocument is the on-disk layout of a YAML shape file:
//
//	shapes:
//	  "63A010":
//	    - [1.0, 0.0]
//	    - [0.95, 0.0067]
type yamlDocument struct {
	Shapes map[string][][]float64 `yaml:"shapes"`
}

// Load builds a Library from a directory of Selig .dat files (keyed by file
// stem) and a YAML shape file. Either source may be empty. A key defined by
// both sources is an error.
func Load(dir, file string) (*Library, error) {
	shapes := map[string][]airfoil.Point{}
	if dir != "" {
		fromDir, err := ReadDir(dir)
		if err != nil {
			return nil, err
		}
		if err := merge(shapes, fromDir); err != nil {
			return nil, err
		}
	}
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("naca6: open shape file: %w", err)
		}
		defer f.Close()
		fromFile, err := ReadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("naca6: %s: %w", file, err)
		}
		if err := merge(shapes, fromFile); err != nil {
			return nil, err
		}
	}
	return New(shapes)
}

// ReadDir parses every *.dat file in dir. The file stem becomes the key, so
// 63A010.dat is stored under "63A010".
func ReadDir(dir string) (map[string][]airfoil.Point, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.dat"))
	if err != nil {
		return nil, fmt.Errorf("naca6: scan %s: %w", dir, err)
	}
	shapes := make(map[string][]airfoil.Point, len(matches))
	for _, path := range matches {
		pts, err := readDatFile(path)
		if err != nil {
			return nil, err
		}
		key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		shapes[key] = pts
	}
	return shapes, nil
}

func readDatFile(path string) ([]airfoil.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("naca6: %w", err)
	}
	defer f.Close()
	_, pts, err := ParseSelig(f)
	if err != nil {
		return nil, fmt.Errorf("naca6: %s: %w", path, err)
	}
	return pts, nil
}

// ReadYAML decodes a YAML shape document.
func ReadYAML(r io.Reader) (map[string][]airfoil.Point, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode: %w", err)
	}
	shapes := make(map[string][]airfoil.Point, len(doc.Shapes))
	for key, rows := range doc.Shapes {
		pts := make([]airfoil.Point, len(rows))
		for i, row := range rows {
			if len(row) != 2 {
				return nil, fmt.Errorf("%w %q: row %d has %d values, want 2", ErrMalformedShape, key, i, len(row))
			}
			pts[i] = airfoil.Point{X: row[0], Y: row[1]}
		}
		shapes[key] = pts
	}
	return shapes, nil
}

func merge(dst, src map[string][]airfoil.Point) error {
	for key, pts := range src {
		if _, exists := dst[key]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		dst[key] = pts
	}
	return nil
}
