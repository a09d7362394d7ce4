package main

import (
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/teresco/tm-dataproc/internal/application/common"
)

// consoleLogger prints one line per call, in the same terse
// progress-narration style a daemon's main loop uses with fmt.Println, but
// structured enough to carry a datacheck code or field set alongside the
// message. A corpus run can emit tens of thousands of datacheck lines;
// limiter caps how many of those reach the terminal per second so a bad
// run doesn't drown the console. Only ERROR lines pass through limiter;
// every other level always prints.
type consoleLogger struct {
	verbose bool
	limiter *rate.Limiter
}

// newConsoleLogger builds a consoleLogger whose coded/datacheck emission is
// capped at 200 lines/second with a burst of 50, matching the terminal's
// own scroll rate rather than the corpus's emission rate.
func newConsoleLogger(verbose bool) *consoleLogger {
	return &consoleLogger{
		verbose: verbose,
		limiter: rate.NewLimiter(rate.Limit(200), 50),
	}
}

var _ common.RunLogger = (*consoleLogger)(nil)

func (l *consoleLogger) Log(level, message string, fields map[string]interface{}) {
	if level == "DEBUG" && !l.verbose {
		return
	}
	if level == "ERROR" && l.limiter != nil && !l.limiter.Allow() {
		return
	}
	if len(fields) == 0 {
		fmt.Printf("[%s] %s\n", level, message)
		return
	}
	parts := make([]string, 0, len(fields))
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	fmt.Printf("[%s] %s (%s)\n", level, message, strings.Join(parts, " "))
}
