package pointcloud

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no decoder handles.
	ErrUnsupportedFormat = errors.New("unsupported point cloud format")
	// ErrMalformed is returned when a file's contents do not match its format.
	ErrMalformed = errors.New("malformed point cloud")
)

// decoder turns raw file contents into a cloud.
type decoder func(data []byte) (*Cloud, error)

var decoders = map[string]decoder{
	"xyz": decodeASCII,
	"txt": decodeASCII,
	"pts": decodeASCII,
	"csv": decodeASCII,
	"pcd": decodePCD,
	"las": decodeLAS,
}

// Load reads a point cloud, choosing the decoder from the file extension.
func Load(path string) (*Cloud, error) {
	ext := Extension(path)
	if ext == "laz" {
		return nil, fmt.Errorf("%w: %s (compressed LAZ, decompress to LAS first)", ErrUnsupportedFormat, path)
	}
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read point cloud %s: %w", path, err)
	}
	cloud, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode point cloud %s: %w", path, err)
	}
	return cloud, nil
}

// Extension returns the lower-cased extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
