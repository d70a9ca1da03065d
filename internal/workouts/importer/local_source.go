package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/workouttracker/pkg"
)

// LocalFolderSource reads export files from a folder on disk, filtered by
// extension (e.g. "csv").
type LocalFolderSource struct {
	folderPath string
	extension  string
}

func NewLocalFolderSource(folderPath, extension string) (*LocalFolderSource, error) {
	exists, err := pkg.PathExists(folderPath, true)
	if err != nil {
		return nil, fmt.Errorf("check source folder %s: %w", folderPath, err)
	}
	if !exists {
		return nil, fmt.Errorf("source folder %s does not exist", folderPath)
	}
	return &LocalFolderSource{
		folderPath: folderPath,
		extension:  strings.TrimPrefix(extension, "."),
	}, nil
}

func (s *LocalFolderSource) Name() string {
	return "local:" + s.folderPath
}

func (s *LocalFolderSource) ListFiles(_ context.Context) ([]File, error) {
	entries, err := os.ReadDir(s.folderPath)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(entry.Name()), "."), s.extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		files = append(files, File{
			ID:        entry.Name(),
			Name:      entry.Name(),
			CreatedAt: info.ModTime(),
		})
	}

	return files, nil
}

func (s *LocalFolderSource) Open(_ context.Context, file File) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.folderPath, file.Name))
}
