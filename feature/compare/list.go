package compare

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"osv-diff/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrListNotFound is returned when no list exists for a mode/fetchtype pair.
var ErrListNotFound = errors.New("list not found")

// ListSource loads the keys to compare for a mode and fetch type.
type ListSource interface {
	Load(ctx context.Context, mode Mode, category string) ([]string, error)
}

// ListName returns the relative location of a list: {mode}/{fetchtype}.txt.
func ListName(mode Mode, category string) string {
	return path.Join(string(mode), category+".txt")
}

// FileSource reads lists from a local directory.
type FileSource struct {
	Dir string
}

// Load reads {Dir}/{mode}/{fetchtype}.txt.
func (s FileSource) Load(_ context.Context, mode Mode, category string) ([]string, error) {
	listPath := filepath.Join(s.Dir, filepath.FromSlash(ListName(mode, category)))

	f, err := os.Open(listPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, listPath)
		}
		return nil, fmt.Errorf("failed to open list %s: %w", listPath, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat list %s: %w", listPath, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrListNotFound, listPath)
	}

	keys, err := ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", listPath, err)
	}
	return keys, nil
}

// ObjectSource reads lists from an object storage bucket.
type ObjectSource struct {
	Client storage.Client
	Bucket string
}

// Load reads {Bucket}/{mode}/{fetchtype}.txt.
func (s ObjectSource) Load(ctx context.Context, mode Mode, category string) ([]string, error) {
	name := ListName(mode, category)

	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %s does not exist", ErrListNotFound, s.Bucket)
	}

	obj, err := s.Client.GetObject(ctx, s.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer obj.Close()

	keys, err := ParseList(obj)
	if err != nil {
		return nil, s.wrap(name, err)
	}
	return keys, nil
}

func (s ObjectSource) wrap(name string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s/%s", ErrListNotFound, s.Bucket, name)
	}
	return fmt.Errorf("failed to read list %s/%s: %w", s.Bucket, name, err)
}

// ParseList returns the non-blank lines of r with surrounding whitespace
// trimmed, in file order.
func ParseList(r io.Reader) ([]string, error) {
	var keys []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
