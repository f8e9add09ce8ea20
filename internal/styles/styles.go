package styles

import (
	"os"

	"github.com/muesli/termenv"
)

// Candidates are written to stdout for the shell to consume, so everything
// meant for a person goes to stderr.
var (
	stderr = termenv.NewOutput(os.Stderr)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
)
