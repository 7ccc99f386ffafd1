package sweep

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ohq-sim/sim"
)

// csvHeader names the output columns; written only when requested.
var csvHeader = []string{"staffing_parameter", "average_wait_time", "average_overtime", "students_served", "score"}

// WriteCSV writes one comma-separated row per scored result:
// "(tn, dt, sn)", average wait, average overtime, students served, score.
// No-data results are skipped.
func WriteCSV(w io.Writer, results []sim.RunResult, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, r := range results {
		if r.NoData {
			continue
		}
		row := []string{
			r.Params.String(),
			formatFloat(r.AverageWaitTime),
			formatFloat(r.AverageOvertime),
			strconv.Itoa(r.StudentsServed),
			formatFloat(r.Score),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Params, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes results to fileName, replacing any existing file.
func SaveCSV(fileName string, results []sim.RunResult, header bool) (err error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if err := WriteCSV(writer, results, header); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote %d results to '%s'", len(results), fileName)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
