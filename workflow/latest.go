package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	lifeline "github.com/lifelinehq/lifeline"
)

// ErrNoResponses is returned when the folder holds no response files.
var ErrNoResponses = errors.New("no LifeLine response files found")

// LatestResponse returns the path of the newest response file in dir. Response
// names carry a timestamp after the prefix, so the lexicographically greatest
// name is the newest.
func LatestResponse(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &lifeline.FileIOError{Op: "list", Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !lifeline.IsResponseFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", ErrNoResponses
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), nil
}

// CopyLatest copies the newest response file in dir to the clipboard and
// returns its path.
func CopyLatest(dir string, cb Clipboard) (string, error) {
	path, err := LatestResponse(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &lifeline.FileIOError{Op: "read", Path: path, Err: err}
	}
	if err := cb.WriteAll(string(data)); err != nil {
		return "", err
	}
	return path, nil
}
