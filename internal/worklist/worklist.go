package worklist

import (
	"bufio"
	"os"
	"strings"

	"example/screenshot-batch/internal/model"
)

// Read loads the work list from the given path. Each non-blank line is one
// work item; the runner calls this again at the start of every batch so the
// list can be edited between batches.
func Read(path string) ([]model.WorkItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var items []model.WorkItem
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, model.WorkItem(line))
	}
	return items, scanner.Err()
}
