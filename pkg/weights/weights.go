// Package weights resolves task duration inputs into the canonical weight
// mapping consumed by the critical-path engine.
//
// Two sources are supported: a direct map from task ID to duration, and CSV
// rows with exactly two columns (task ID, integer weight). Either way the
// result is validated against the graph before any schedule pass runs: every
// task must carry a non-negative integer weight, unless the caller explicitly
// enables the default-zero policy for unweighted tasks.
package weights

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/critpathlabs/critpath/pkg/dag"
	"github.com/critpathlabs/critpath/pkg/errors"
)

// Options controls resolution policy.
type Options struct {
	// AllowMissing assigns weight 0 to tasks absent from the weight source
	// instead of failing with a MISSING_WEIGHT error. Default false: every
	// task in the graph must be explicitly weighted.
	AllowMissing bool
}

// Resolve validates a weight map against the graph and returns the complete
// mapping the engine will use. The input map is not mutated.
//
// Failure modes:
//   - INVALID_WEIGHT if any weight is negative (names the task and value)
//   - MALFORMED_GRAPH if the map names a task the graph doesn't contain
//   - MISSING_WEIGHT if a graph task has no entry and opts.AllowMissing is
//     false (names every unweighted task, not just the first)
func Resolve(m map[string]int, g *dag.DAG, opts Options) (map[string]int, error) {
	resolved := make(map[string]int, g.TaskCount())
	for id, w := range m {
		if w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"task %s: weight %d is negative", id, w)
		}
		if !g.HasTask(id) {
			return nil, errors.New(errors.ErrCodeMalformedGraph,
				"weighted task %s does not exist in the graph", id)
		}
		resolved[id] = w
	}

	var missing []string
	for _, id := range g.Tasks() {
		if _, ok := resolved[id]; ok {
			continue
		}
		if opts.AllowMissing {
			resolved[id] = 0
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, errors.New(errors.ErrCodeMissingWeight,
			"no weight for task(s): %s", strings.Join(missing, ", "))
	}

	return resolved, nil
}

// ReadCSV parses two-column (task ID, weight) rows from r into a weight map.
// A header row is tolerated: if the second field of the first row does not
// parse as an integer, the row is skipped.
//
// Failure modes:
//   - INVALID_FORMAT for rows without exactly two columns
//   - INVALID_WEIGHT for duplicate task rows or non-integer weight values,
//     naming the task, raw value, and row number
//
// Negative weights and graph cross-checks are left to [Resolve].
func ReadCSV(r io.Reader) (map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse weights CSV")
	}

	m := make(map[string]int, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"row %d: expected 2 columns (task, weight), got %d", i+1, len(row))
		}
		task := strings.TrimSpace(row[0])
		raw := strings.TrimSpace(row[1])

		w, convErr := strconv.Atoi(raw)
		if convErr != nil {
			if i == 0 {
				continue // header row
			}
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"task %s: weight %q on row %d is not an integer", task, raw, i+1)
		}
		if err := errors.ValidateTaskID(task); err != nil {
			return nil, err
		}
		if _, dup := m[task]; dup {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"task %s is weighted more than once (row %d); task IDs must be unique", task, i+1)
		}
		m[task] = w
	}
	return m, nil
}

// ImportCSV reads and parses the weights CSV file at path.
func ImportCSV(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "weights file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
