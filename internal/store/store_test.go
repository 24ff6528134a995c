package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constModel struct {
	Value float64 `json:"value"`
}

func (constModel) Kind() string { return "test/const" }

func testDecoders() map[string]Decoder {
	return map[string]Decoder{
		"test/const": func(payload json.RawMessage) (any, error) {
			var m constModel
			if err := json.Unmarshal(payload, &m); err != nil {
				return nil, err
			}
			if m.Value < 0 {
				return nil, errors.New("negative value")
			}
			return &m, nil
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(testDecoders())
	p := filepath.Join(t.TempDir(), "m.pkl")

	saved, err := s.Save(p, constModel{Value: 42})
	require.NoError(t, err)
	assert.Equal(t, "test/const", saved.Kind)
	assert.Len(t, saved.Checksum, 64)

	h, err := s.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "test/const", h.Kind)
	assert.Equal(t, saved.Checksum, h.Info.Checksum)
	assert.Equal(t, saved.Checksum[:12], h.Info.Version())
	assert.NotEmpty(t, h.Info.HumanSize())

	m, ok := h.Model.(*constModel)
	require.True(t, ok)
	assert.Equal(t, 42.0, m.Value)
}

func TestLoadFailuresAreCorruptArtifacts(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	cases := map[string]string{
		"missing":        filepath.Join(dir, "missing.pkl"),
		"not json":       write("garbage.pkl", "\x80\x04\x95pickle"),
		"no kind":        write("nokind.pkl", `{"format_version":1,"payload":{}}`),
		"unknown kind":   write("unknown.pkl", `{"kind":"x/y","format_version":1,"payload":{}}`),
		"future format":  write("future.pkl", `{"kind":"test/const","format_version":99,"payload":{}}`),
		"empty payload":  write("empty.pkl", `{"kind":"test/const","format_version":1}`),
		"decoder reject": write("neg.pkl", `{"kind":"test/const","format_version":1,"payload":{"value":-1}}`),
	}
	s := New(testDecoders())
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(p)
			require.Error(t, err)
			assert.True(t, IsCorruptArtifact(err), "got %v", err)
			assert.False(t, IsWriteFailure(err))
		})
	}
}

func TestSaveWriteFailure(t *testing.T) {
	s := New(testDecoders())
	_, err := s.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "m.pkl"), constModel{Value: 1})
	require.Error(t, err)
	assert.True(t, IsWriteFailure(err))

	_, err = s.Save(filepath.Join(t.TempDir(), "m.pkl"), nil)
	assert.True(t, IsWriteFailure(err))
}

func TestSaveKeepsOldArtifactOnFailure(t *testing.T) {
	s := New(testDecoders())
	dir := t.TempDir()
	p := filepath.Join(dir, "m.pkl")
	_, err := s.Save(p, constModel{Value: 1})
	require.NoError(t, err)

	_, err = s.Save(p, badModel{})
	require.Error(t, err)

	h, err := s.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.Model.(*constModel).Value)
}

// badModel cannot be JSON encoded.
type badModel struct {
	Ch chan int `json:"ch"`
}

func (badModel) Kind() string { return "test/const" }
