package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GetChangedFiles lists files changed against baseRef, relative to the
// working directory. Deleted files are left out.
func GetChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", "--diff-filter=d", "--relative", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseNames(output)
}

// ChangedSources returns the changed files whose extension is in exts,
// in diff order.
func ChangedSources(ctx context.Context, baseRef string, exts ...string) ([]string, error) {
	changes, err := GetChangedFiles(ctx, baseRef)
	if err != nil {
		return nil, err
	}
	return filterByExt(changes, exts), nil
}

func filterByExt(changes []string, exts []string) []string {
	var paths []string
	for _, c := range changes {
		ext := strings.ToLower(filepath.Ext(c))
		for _, e := range exts {
			if ext == e {
				paths = append(paths, filepath.FromSlash(c))
				break
			}
		}
	}
	return paths
}

func parseNames(output []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var names []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read git diff: %w", err)
	}
	return names, nil
}
