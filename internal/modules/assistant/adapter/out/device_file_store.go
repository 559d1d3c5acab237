package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	assistantout "lockedin/internal/modules/assistant/port/out"
)

const deviceFile = "device-id"

// DeviceFileStore keeps one generated device id under the data dir.
type DeviceFileStore struct {
	path string
	mu   sync.Mutex
}

func NewDeviceFileStore(dataDir string) assistantout.DeviceStore {
	return &DeviceFileStore{path: filepath.Join(dataDir, deviceFile)}
}

func (s *DeviceFileStore) DeviceID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read device id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write device id: %w", err)
	}
	return id, nil
}
