package rules

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var scanSkipDirs = map[string]bool{
	".git": true, "node_modules": true, "__pycache__": true,
	"venv": true, "env": true, "dist": true, "build": true, "vendor": true,
}

var scanExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".java": true, ".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".cs": true, ".go": true, ".rb": true, ".php": true, ".rs": true,
	".swift": true, ".kt": true, ".sh": true, ".html": true, ".css": true,
	".sql": true, ".yaml": true, ".yml": true, ".json": true, ".md": true,
}

// CheckDir runs every active rule over the recognized source files under
// root. Findings carry paths relative to root.
func (e *Engine) CheckDir(root string) []Finding {
	findings := []Finding{}

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if scanSkipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !scanExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			return nil
		}

		fileFindings := e.CheckFile(path)
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			rel = filepath.ToSlash(rel)
			for i := range fileFindings {
				fileFindings[i].File = rel
			}
		}
		findings = append(findings, fileFindings...)
		return nil
	})

	return findings
}
