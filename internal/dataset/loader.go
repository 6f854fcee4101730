package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"boolevald/internal/common/fsutil"
	"boolevald/pkg/types"
)

// Load reads one task per line: question, expected label, then any number of
// hint fields. The label must parse as a boolean or the row is skipped; the
// remaining fields are rejoined with commas (the hint may itself contain
// commas) and surrounding quote characters are trimmed. Returns the tasks
// and the number of skipped rows.
func Load(path string) ([]types.Task, int, error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var tasks []types.Task
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		task, ok := parseRow(line)
		if !ok {
			skipped++
			continue
		}
		tasks = append(tasks, task)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read dataset: %w", err)
	}
	return tasks, skipped, nil
}

func parseRow(line string) (types.Task, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return types.Task{}, false
	}
	expected, err := strconv.ParseBool(strings.TrimSpace(fields[1]))
	if err != nil {
		return types.Task{}, false
	}
	hint := ""
	if len(fields) > 2 {
		hint = strings.Trim(strings.Join(fields[2:], ","), `"`)
	}
	return types.Task{
		Question: strings.TrimSpace(fields[0]),
		Expected: expected,
		Hint:     hint,
	}, true
}
