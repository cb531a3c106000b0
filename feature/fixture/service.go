package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrOutsideRoot is returned for paths escaping the recording root.
var ErrOutsideRoot = errors.New("path escapes fixture root")

// Service resolves request paths to recorded JSON bodies.
type Service struct {
	root   string
	logger *zap.Logger
}

// NewService creates a service serving recordings under root.
func NewService(root string, logger *zap.Logger) *Service {
	return &Service{root: root, logger: logger}
}

// Lookup returns the recording for a harness path such as "Go/ids/GO-1",
// stored at {root}/Go/ids/GO-1.json. found is false when nothing is recorded.
func (s *Service) Lookup(path string) (body []byte, found bool, err error) {
	file, err := s.resolve(path)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read recording %s: %w", file, err)
	}
	if !json.Valid(data) {
		return nil, false, fmt.Errorf("recording %s is not valid JSON", file)
	}
	return data, true, nil
}

func (s *Service) resolve(path string) (string, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	file := filepath.Join(root, filepath.FromSlash(path)+".json")
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return file, nil
}
