package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks migration filenames, goose headers and version
// uniqueness in dir. Each dialect subdirectory is validated the same way and
// must carry exactly the versions of its parent.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	versions, subdirs, err := scanDir(dir)
	if err != nil {
		return err
	}

	for _, sub := range subdirs {
		subVersions, nested, err := scanDir(sub)
		if err != nil {
			return err
		}
		if len(nested) > 0 {
			return fmt.Errorf("nested dialect directory under %q", sub)
		}
		if err := sameVersions(dir, versions, sub, subVersions); err != nil {
			return err
		}
	}
	return nil
}

func scanDir(dir string) (map[string]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := map[string]string{}
	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, e.Name()))
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := versions[m[1]]; ok {
			return nil, nil, fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		versions[m[1]] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return nil, nil, fmt.Errorf("read file %q: %w", full, err)
		}
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(string(b), marker) {
				return nil, nil, fmt.Errorf("migration %q missing %q", name, marker)
			}
		}
	}
	return versions, subdirs, nil
}

func sameVersions(dir string, want map[string]string, sub string, got map[string]string) error {
	var missing, extra []string
	for v := range want {
		if _, ok := got[v]; !ok {
			missing = append(missing, v)
		}
	}
	for v := range got {
		if _, ok := want[v]; !ok {
			extra = append(extra, v)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return fmt.Errorf("dialect %q out of sync with %q: missing %v, extra %v", sub, dir, missing, extra)
}
