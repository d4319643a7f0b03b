package model

// RunArtifact describes one file in a run directory, as recorded by a
// RunManifest.
type RunArtifact struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Bytes  int64  `json:"bytes"`
}

// RunManifest is the directory-level hashing lockfile produced by a run.
// RootSHA256 is the canonical hash of the manifest with this field elided,
// so it is never part of its own input.
type RunManifest struct {
	GeneratedAt string        `json:"generatedAt"`
	Files       []RunArtifact `json:"files"`
	RootSHA256  string        `json:"rootSha256"`
}
