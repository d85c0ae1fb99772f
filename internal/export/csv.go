package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/projsim/internal/dynamo"
)

var csvHeader = []string{"time", "x", "y", "vx", "vy", "speed"}

func WriteCSV(w io.Writer, traj dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range traj {
		row := []string{
			formatFloat(s.T),
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.VX),
			formatFloat(s.VY),
			formatFloat(s.Speed()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, traj dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, traj)
}

// ReadCSV parses a file written by WriteCSV. The speed column is derived
// and ignored on input.
func ReadCSV(r io.Reader) (dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return dynamo.Trajectory{}, nil
	}

	traj := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 5 {
			return nil, fmt.Errorf("row %d: expected at least 5 columns, got %d", i+2, len(record))
		}
		var vals [5]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+2, csvHeader[j], err)
			}
			vals[j] = v
		}
		traj = append(traj, dynamo.Sample{T: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4]})
	}

	return traj, nil
}

func LoadCSV(path string) (dynamo.Trajectory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
