// Package actions connects reposync to the GitHub Actions runner: inputs,
// log groups, workflow commands and the triggering event.
package actions

import (
	"io"
	"os"

	"github.com/sethvargo/go-githubactions"
)

// New creates an action that reads its environment through getenv and writes
// workflow commands to w. A nil getenv reads the process environment and a
// nil w writes to stdout.
func New(getenv func(string) string, w io.Writer) *githubactions.Action {
	if w == nil {
		w = os.Stdout
	}

	opts := []githubactions.Option{githubactions.WithWriter(w)}
	if getenv != nil {
		opts = append(opts, githubactions.WithGetenv(getenv))
	}
	return githubactions.New(opts...)
}
