// Package store reads and writes serialized model artifacts. It holds no
// business logic and caches nothing: every call touches disk.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"

	"finplan/internal/common/fsutil"
)

// FormatVersion is written into every envelope. Load rejects newer versions.
const FormatVersion = 1

// Persistable is a model that can be written as an artifact.
// The payload is the JSON encoding of the value itself.
type Persistable interface {
	Kind() string
}

// Decoder turns an envelope payload back into a model value.
type Decoder func(payload json.RawMessage) (any, error)

// ArtifactInfo describes where a handle came from.
type ArtifactInfo struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"mod_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Version is a short form of the checksum.
func (i ArtifactInfo) Version() string {
	if len(i.Checksum) > 12 {
		return i.Checksum[:12]
	}
	return i.Checksum
}

// HumanSize renders Size for status reports.
func (i ArtifactInfo) HumanSize() string { return units.HumanSize(float64(i.Size)) }

// Handle is an opaque deserialized model plus its provenance.
type Handle struct {
	Kind  string
	Model any
	Info  ArtifactInfo
}

type envelope struct {
	Kind          string          `json:"kind"`
	FormatVersion int             `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Store loads and saves artifacts using a fixed table of decoders.
type Store struct {
	decoders map[string]Decoder
	now      func() time.Time
}

// New returns a Store that understands the given kinds.
func New(decoders map[string]Decoder) *Store {
	d := make(map[string]Decoder, len(decoders))
	for k, v := range decoders {
		d[k] = v
	}
	return &Store{decoders: d, now: time.Now}
}

// Load reads the artifact at path. Any problem (missing file, bad envelope,
// unknown kind, decode failure) is reported as a corrupt artifact.
func (s *Store) Load(path string) (Handle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Handle{}, ErrCorruptArtifact(path, err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Handle{}, ErrCorruptArtifact(path, err)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Handle{}, ErrCorruptArtifact(path, fmt.Errorf("envelope: %w", err))
	}
	if strings.TrimSpace(env.Kind) == "" {
		return Handle{}, ErrCorruptArtifact(path, fmt.Errorf("envelope has no kind"))
	}
	if env.FormatVersion <= 0 || env.FormatVersion > FormatVersion {
		return Handle{}, ErrCorruptArtifact(path, fmt.Errorf("unsupported format version %d", env.FormatVersion))
	}
	dec, ok := s.decoders[env.Kind]
	if !ok {
		return Handle{}, ErrCorruptArtifact(path, fmt.Errorf("unknown kind %q", env.Kind))
	}
	if len(env.Payload) == 0 {
		return Handle{}, ErrCorruptArtifact(path, fmt.Errorf("empty payload"))
	}
	mdl, err := dec(env.Payload)
	if err != nil {
		return Handle{}, ErrCorruptArtifact(path, err)
	}
	return Handle{
		Kind:  env.Kind,
		Model: mdl,
		Info: ArtifactInfo{
			Path:      path,
			Kind:      env.Kind,
			Checksum:  checksum(b),
			Size:      fi.Size(),
			ModTime:   fi.ModTime(),
			CreatedAt: env.CreatedAt,
		},
	}, nil
}

// Save writes model to path atomically. An existing artifact is replaced only
// after the new one is fully on disk.
func (s *Store) Save(path string, model Persistable) (ArtifactInfo, error) {
	if model == nil {
		return ArtifactInfo{}, ErrWriteFailure(path, fmt.Errorf("nil model"))
	}
	payload, err := json.Marshal(model)
	if err != nil {
		return ArtifactInfo{}, ErrWriteFailure(path, fmt.Errorf("encode payload: %w", err))
	}
	env := envelope{
		Kind:          model.Kind(),
		FormatVersion: FormatVersion,
		CreatedAt:     s.now().UTC(),
		Payload:       payload,
	}
	b, err := json.Marshal(env)
	if err != nil {
		return ArtifactInfo{}, ErrWriteFailure(path, fmt.Errorf("encode envelope: %w", err))
	}
	if err := fsutil.WriteFileAtomic(path, b, 0o644); err != nil {
		return ArtifactInfo{}, ErrWriteFailure(path, err)
	}
	info := ArtifactInfo{Path: path, Kind: env.Kind, Checksum: checksum(b), Size: int64(len(b)), CreatedAt: env.CreatedAt}
	if fi, err := os.Stat(path); err == nil {
		info.ModTime = fi.ModTime()
	}
	return info, nil
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
