package utils

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a standardized, human-readable correlation ID for
// one end-to-end tmbuild invocation, used as the run_id log field so output from two overlapping runs against the same output tree is
// never conflated. Format: {operation}-{outputTreeName}-{pid}-{8charHexUUID}.
//
// Example:
//   - Input: operation="run", outputPath="/var/tmbuild/out/tm.db"
//   - Output: "run-tm-4021-a3f8e2b1"
func GenerateRunID(operation, outputPath string, pid int) string {
	stem := pathStem(outputPath)
	shortUUID := generateShortUUID()
	return operation + "-" + stem + "-" + strconv.Itoa(pid) + "-" + shortUUID
}

// pathStem returns the final path segment with its extension stripped, the
// stable part of a database or output path across re-runs against rotated
// or timestamped copies of the same tree.
func pathStem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "run"
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// generateShortUUID creates an 8-character hex string from a UUID, short
// enough to keep a log line readable while still disambiguating
// same-second concurrent runs.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
