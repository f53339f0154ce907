package airfoil

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Fingerprint returns the lowercase hex SHA-256 of the loop encoded as
// little-endian float64 values in the order x0, y0, x1, y1, ...
//
// It identifies content only and carries no security property.
func Fingerprint(points []Point) string {
	buf := make([]byte, 0, len(points)*16)
	for _, p := range points {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
