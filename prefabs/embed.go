package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed *.yaml dialogs/*.yaml
var PrefabsFS embed.FS

// Load reads a prefab, preferring a copy under ./prefabs on disk so edits
// show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DialogFiles lists the dialog trees, merging disk files over embedded ones.
func DialogFiles() ([]string, error) {
	seen := make(map[string]bool)
	entries, err := fs.ReadDir(PrefabsFS, "dialogs")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && isSpecFile(e.Name()) {
			seen[path.Join("dialogs", e.Name())] = true
		}
	}
	if disk, err := os.ReadDir(diskPrefabPath("dialogs")); err == nil {
		for _, e := range disk {
			if !e.IsDir() && isSpecFile(e.Name()) {
				seen[path.Join("dialogs", e.Name())] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if idx := strings.LastIndex(s, "/prefabs/"); idx >= 0 {
		return s[idx+len("/prefabs/"):]
	}
	return strings.TrimPrefix(s, "prefabs/")
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
