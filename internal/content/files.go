package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a named blob of text supplied by a client upload.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ReadFileContent reads the file at path as text.
func ReadFileContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}
	return string(data), nil
}

// ReadFolderContents reads every regular file directly inside dir.
// Subdirectories are skipped and empty files are left out of the result.
func ReadFolderContents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	contents := make([]string, 0, len(entries))
	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())
		info, err := os.Stat(fullPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", fullPath, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		text, err := ReadFileContent(fullPath)
		if err != nil {
			return nil, err
		}
		if text != "" {
			contents = append(contents, text)
		}
	}
	return contents, nil
}

// CombineFiles joins uploaded files as "\nContent from <name>:\n<content>"
// sections in the order given.
func CombineFiles(files []File) string {
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "\nContent from %s:\n%s", f.Name, f.Content)
	}
	return sb.String()
}
