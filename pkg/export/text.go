package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// WriteDat writes a Selig coordinate file: the section name on the first
// line, then one "x y" pair per line with six decimals, in loop order.
func WriteDat(w io.Writer, foil *airfoil.Airfoil) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, foil.Name)
	for _, p := range foil.Points {
		fmt.Fprintf(bw, "%.6f %.6f\n", p.X, p.Y)
	}
	return bw.Flush()
}

// WriteCSV writes an "x,y" header followed by the loop at full precision.
func WriteCSV(w io.Writer, foil *airfoil.Airfoil) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range foil.Points {
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
