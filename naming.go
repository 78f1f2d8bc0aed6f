package lifeline

import (
	"path/filepath"
	"strings"
)

// Naming convention for the watched folder. Every check that distinguishes a
// request from a response goes through IsResponseFile, so a response written by
// the workflow can never be picked up as a new request.
const (
	// FolderName is the sentinel folder created inside each workspace root.
	FolderName = "_lifeline"
	// RequestPrefix marks request files: _lifeline-<name>.md.
	RequestPrefix = "_lifeline-"
	// ResponsePrefix marks response files: _lifeline-response-<name>.md.
	ResponsePrefix = "_lifeline-response-"
	// Ext is the extension shared by request and response files.
	Ext = ".md"
)

// IsMarkdown reports whether name has the markdown extension.
func IsMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}

// IsResponseFile reports whether the base name of path is a response file.
func IsResponseFile(path string) bool {
	base := filepath.Base(path)
	return IsMarkdown(base) && strings.HasPrefix(base, ResponsePrefix)
}

// IsRequestFile reports whether the base name of path is a request file.
// Response files share the request prefix and are excluded.
func IsRequestFile(path string) bool {
	base := filepath.Base(path)
	return IsMarkdown(base) && strings.HasPrefix(base, RequestPrefix) && !IsResponseFile(base)
}

// ResponseName returns the response file name for a request file name, keeping
// the same extension: _lifeline-foo.md becomes _lifeline-response-foo.md.
// It returns "" when name is not a request file.
func ResponseName(name string) string {
	base := filepath.Base(name)
	if !IsRequestFile(base) {
		return ""
	}
	return ResponsePrefix + strings.TrimPrefix(base, RequestPrefix)
}

// ResponsePath returns the sibling response path for a request file path, or ""
// when path is not a request file.
func ResponsePath(path string) string {
	name := ResponseName(path)
	if name == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), name)
}

// Dir returns the watched folder for a workspace root.
func Dir(root string) string {
	return filepath.Join(root, FolderName)
}
