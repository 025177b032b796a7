package plot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultExportName is the file written by Export when no path is given.
const DefaultExportName = "graph.png"

// Exporter remembers the most recent rendering.
type Exporter struct {
	mu   sync.RWMutex
	last []byte
}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Store replaces the remembered PNG. A nil slice clears it.
func (e *Exporter) Store(png []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if png == nil {
		e.last = nil
		return
	}
	e.last = append([]byte(nil), png...)
}

// PNG returns a copy of the remembered PNG, or nil.
func (e *Exporter) PNG() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.last == nil {
		return nil
	}
	return append([]byte(nil), e.last...)
}

// Export writes the remembered PNG to path, or to DefaultExportPath when
// path is empty. With nothing rendered yet it does nothing and reports
// false.
func (e *Exporter) Export(path string) (bool, error) {
	data := e.PNG()
	if data == nil {
		return false, nil
	}
	if path == "" {
		p, err := DefaultExportPath()
		if err != nil {
			return false, err
		}
		path = p
	}
	if dir := filepath.Dir(path); dir != "" {
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("export graph: directory %s does not exist", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("export graph: %w", err)
	}
	return true, nil
}

// DefaultExportPath is graph.png in the working directory.
func DefaultExportPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.Join(wd, DefaultExportName), nil
}
