package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# lulog dumps and index"

// ignoreOutputs adds each repo-relative output path to repoRoot/.gitignore
// unless an equivalent pattern ("p", "/p", "p/" or "/p/") is already there.
// It returns the entries it added, in order.
func ignoreOutputs(repoRoot string, paths ...string) ([]string, error) {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}

	present := map[string]bool{}
	for _, line := range strings.Split(string(existing), "\n") {
		present[gitignoreKey(line)] = true
	}

	var added []string
	for _, path := range paths {
		entry, err := gitignoreEntry(repoRoot, path)
		if err != nil {
			return nil, err
		}
		if present[gitignoreKey(entry)] {
			continue
		}
		present[gitignoreKey(entry)] = true
		added = append(added, entry)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteByte('\n')
	}
	if !present[gitignoreHeader] {
		b.WriteString(gitignoreHeader + "\n")
	}
	for _, entry := range added {
		b.WriteString(entry + "\n")
	}
	if err := os.WriteFile(gitignorePath, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write .gitignore: %w", err)
	}
	return added, nil
}

func gitignoreKey(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return line
	}
	return strings.Trim(line, "/")
}

// gitignoreEntry turns path into a slash separated entry inside repoRoot.
func gitignoreEntry(repoRoot, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("gitignore path is empty")
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		clean = rel
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the repo root", path)
	}
	return filepath.ToSlash(clean), nil
}
