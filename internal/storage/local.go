package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Paths owns the two flat directories the service writes to: staged
// uploads (deleted per request) and generated audio (kept, served
// statically). File names are {id}{ext}; existence on disk is the only
// source of truth, there is no manifest.
type Paths struct {
	UploadDir string
	AudioDir  string
}

func NewPaths(uploadDir, audioDir string) *Paths {
	return &Paths{UploadDir: uploadDir, AudioDir: audioDir}
}

// EnsureDirs creates both directories if absent. Idempotent; called once
// before the server accepts requests.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.UploadDir, p.AudioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (p *Paths) UploadPath(id, ext string) string {
	return filepath.Join(p.UploadDir, id+ext)
}

func (p *Paths) AudioPath(id string) string {
	return filepath.Join(p.AudioDir, id+".mp3")
}

// SaveUpload streams the uploaded bytes to the staging area and returns
// the file path.
func (p *Paths) SaveUpload(id, ext string, r io.Reader) (string, error) {
	path := p.UploadPath(id, ext)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path, nil
}

func (p *Paths) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
