package main

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"questnotes/internal/cli"
)

func isQuestID(s string) bool {
	return uuid.Validate(strings.TrimSpace(s)) == nil
}

// rewriteDirectQuestLookupArgs turns `questnotes <quest-id>` into
// `questnotes quests show <quest-id>`. Cobra treats the first positional
// token as a subcommand, so the rewrite happens before parsing, skipping
// persistent flags and their values.
func rewriteDirectQuestLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":         true,
		"--format":      true,
		"--log-level":   true,
		"--storage-key": true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--log-dev": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "quests", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isQuestID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			switch {
			case strings.Contains(a, "="), boolFlags[a]:
			case valueFlags[a]:
				i++
			}
			continue
		}

		if isQuestID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectQuestLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
