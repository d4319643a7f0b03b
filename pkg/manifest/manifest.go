package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/hashids"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
)

// ManifestFileName is the name Generate skips when enumerating a run
// directory, and the default basename Write uses.
const ManifestFileName = "manifest.json"

// Generate walks dir, hashing every regular, non-dotfile, non-manifest
// entry (non-recursively; a run directory is flat) into a RunManifest
// with a deterministic rootSha256.
func Generate(dir string, now clock.Clock) (model.RunManifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return model.RunManifest{}, fmt.Errorf("manifest: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == ManifestFileName || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]model.RunArtifact, 0, len(names))
	for _, name := range names {
		full := filepath.Join(dir, name)
		sum, err := hashids.HashFile(full)
		if err != nil {
			return model.RunManifest{}, fmt.Errorf("manifest: hash %s: %w", full, err)
		}
		info, err := os.Stat(full)
		if err != nil {
			return model.RunManifest{}, fmt.Errorf("manifest: stat %s: %w", full, err)
		}
		files = append(files, model.RunArtifact{
			Path:   name,
			SHA256: sum,
			Bytes:  info.Size(),
		})
	}

	m := model.RunManifest{
		GeneratedAt: clock.Now(now),
		Files:       files,
	}

	root, err := hashids.HashObject(m, "rootSha256")
	if err != nil {
		return model.RunManifest{}, fmt.Errorf("manifest: compute rootSha256: %w", err)
	}
	m.RootSHA256 = root

	return m, nil
}

// Write serializes m as pretty JSON (2-space indent, trailing newline) to
// path. The layout is fixed; replay tooling diffs manifests byte-for-byte.
func Write(path string, m model.RunManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("manifest: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("manifest: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("manifest: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("manifest: rename into place: %w", err)
	}
	return nil
}

// Read loads a RunManifest previously written by Write.
func Read(path string) (model.RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RunManifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m model.RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return model.RunManifest{}, fmt.Errorf("manifest: unmarshal %s: %w", path, err)
	}
	return m, nil
}

// Mismatch describes one file that failed verification.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// VerifyResult summarizes a verification pass: verified=false on any mismatch.
type VerifyResult struct {
	Verified   bool       `json:"verified"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Verify rehashes every file listed in the manifest at manifestPath
// (resolved relative to its own directory) and reports per-file
// match/missing/modified status. Any mismatch fails verification.
func Verify(manifestPath string) (VerifyResult, error) {
	m, err := Read(manifestPath)
	if err != nil {
		return VerifyResult{}, err
	}
	dir := filepath.Dir(manifestPath)

	result := VerifyResult{Verified: true}
	for _, f := range m.Files {
		full := filepath.Join(dir, f.Path)

		sum, err := hashids.HashFile(full)
		if err != nil {
			result.Verified = false
			result.Mismatches = append(result.Mismatches, Mismatch{Path: f.Path, Reason: "missing"})
			continue
		}
		if sum != f.SHA256 {
			result.Verified = false
			result.Mismatches = append(result.Mismatches, Mismatch{Path: f.Path, Reason: "sha256 mismatch"})
		}
	}

	return result, nil
}
