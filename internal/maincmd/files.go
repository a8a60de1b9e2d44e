package maincmd

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandFileArgs expands doublestar glob patterns in the file arguments.
// Arguments without glob metacharacters pass through untouched, so a
// missing file fails on open with its own name.
func expandFileArgs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, `*?[{`) {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no matching files", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}
