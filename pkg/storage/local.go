package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"infuct.com/seguimiento/pkg/logger"
)

// ErrFileNotFound is returned by Open when nothing is stored under the path.
var ErrFileNotFound = errors.New("file not found")

// FileStorage stores uploaded documents. Paths returned by Save are relative
// to the storage root and are what gets persisted on records.
type FileStorage interface {
	Save(r io.Reader, subDir, fileName string) (string, error)
	Open(path string) (io.ReadCloser, int64, error)
	Exists(path string) bool
	Delete(path string) error
	// Move renames from to to, replacing anything stored under to.
	Move(from, to string) error
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates basePath and the given sub directories if needed.
func NewLocalStorage(basePath string, subDirs ...string) (*LocalStorage, error) {
	for _, dir := range append([]string{""}, subDirs...) {
		full := filepath.Join(basePath, dir)
		if err := os.MkdirAll(full, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", full).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", full, err)
		}
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to a flat ASCII file name. The result may be
// empty when nothing usable remains.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// resolve maps a stored path to a location under basePath. The path is
// cleaned as if rooted so it cannot escape the storage directory.
func (ls *LocalStorage) resolve(path string) string {
	clean := filepath.Clean("/" + filepath.ToSlash(path))
	return filepath.Join(ls.basePath, clean)
}

// Save writes r to subDir/fileName. fileName is expected to be sanitised by
// the caller. An existing file with the same name is replaced.
func (ls *LocalStorage) Save(r io.Reader, subDir, fileName string) (string, error) {
	if fileName == "" {
		return "", errors.New("file name is empty")
	}

	rel := filepath.Join(subDir, fileName)
	dstPath := ls.resolve(rel)

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err = io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to close destination file: %w", err)
	}

	logger.Info().Str("saved_as", rel).Msg("File saved successfully")
	return filepath.ToSlash(rel), nil
}

func (ls *LocalStorage) Open(path string) (io.ReadCloser, int64, error) {
	if path == "" {
		return nil, 0, ErrFileNotFound
	}

	f, err := os.Open(ls.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrFileNotFound
		}
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrFileNotFound
	}

	return f, info.Size(), nil
}

func (ls *LocalStorage) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(ls.resolve(path))
	return err == nil && !info.IsDir()
}

// Delete removes the file. A missing file is not an error.
func (ls *LocalStorage) Delete(path string) error {
	if path == "" {
		return nil
	}

	physicalPath := ls.resolve(path)
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

func (ls *LocalStorage) Move(from, to string) error {
	if from == "" || to == "" {
		return errors.New("file path is empty")
	}

	dstPath := ls.resolve(to)
	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create subdirectory: %w", err)
	}
	if err := os.Rename(ls.resolve(from), dstPath); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		logger.Error().Err(err).Str("from", from).Str("to", to).Msg("Failed to move file")
		return fmt.Errorf("failed to move file: %w", err)
	}
	return nil
}
