package datacheck

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFalsePositives parses datacheckfps.csv (6 fields — root,
// label1, label2, label3, code, info) into the suppression list NewChecker
// consumes.
func LoadFalsePositives(path string) ([]*FalsePositive, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening datacheck false-positive file: %w", err)
	}
	defer f.Close()

	var out []*FalsePositive
	scanner := bufio.NewScanner(f)
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 6 {
			continue
		}
		out = append(out, &FalsePositive{
			Root:   strings.TrimSpace(fields[0]),
			Label1: strings.TrimSpace(fields[1]),
			Label2: strings.TrimSpace(fields[2]),
			Label3: strings.TrimSpace(fields[3]),
			Code:   strings.TrimSpace(fields[4]),
			Info:   strings.TrimSpace(fields[5]),
		})
	}
	return out, scanner.Err()
}
