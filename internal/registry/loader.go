package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"finplan/internal/common/fsutil"
)

// Role names one slot of a model set.
type Role string

const (
	RoleForecaster Role = "forecaster"
	RoleRegressor  Role = "regressor"
	RoleClassifier Role = "classifier"
)

// Roles lists every role a complete model set carries, in load order.
var Roles = []Role{RoleForecaster, RoleRegressor, RoleClassifier}

// Default artifact and dataset file names. Deployments rely on these exact names.
const (
	DefaultForecasterFile = "gold_prophet_model.pkl"
	DefaultRegressorFile  = "property_gbm_model.pkl"
	DefaultClassifierFile = "property_gbm_classifier.pkl"

	GoldDataFile     = "gold_data.csv"
	PropertyDataFile = "property_data.csv"

	// LockFile is held exclusively while training writes artifacts and
	// shared while the serving side loads them.
	LockFile = ".train.lock"

	artifactExt = ".pkl"
)

// Names overrides artifact file names per role. Empty fields use the defaults.
type Names struct {
	Forecaster string `json:"forecaster" yaml:"forecaster" toml:"forecaster"`
	Regressor  string `json:"regressor" yaml:"regressor" toml:"regressor"`
	Classifier string `json:"classifier" yaml:"classifier" toml:"classifier"`
}

// withDefaults fills unset names.
func (n Names) withDefaults() Names {
	if n.Forecaster == "" {
		n.Forecaster = DefaultForecasterFile
	}
	if n.Regressor == "" {
		n.Regressor = DefaultRegressorFile
	}
	if n.Classifier == "" {
		n.Classifier = DefaultClassifierFile
	}
	return n
}

// Layout is the resolved set of artifact paths inside a models directory.
type Layout struct {
	Dir   string
	paths map[Role]string
}

// Path returns the artifact path for role.
func (l Layout) Path(r Role) string { return l.paths[r] }

// Resolve expands '~', makes dir absolute and maps every role to its artifact path.
func Resolve(dir string, names Names) (Layout, error) {
	if strings.TrimSpace(dir) == "" {
		return Layout{}, fmt.Errorf("models dir is empty")
	}
	abs, err := fsutil.ResolveDir(dir)
	if err != nil {
		return Layout{}, err
	}
	n := names.withDefaults()
	return Layout{
		Dir: abs,
		paths: map[Role]string{
			RoleForecaster: filepath.Join(abs, n.Forecaster),
			RoleRegressor:  filepath.Join(abs, n.Regressor),
			RoleClassifier: filepath.Join(abs, n.Classifier),
		},
	}, nil
}

// File describes an artifact found on disk.
type File struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Scan lists *.pkl artifacts in dir, sorted by name. Used for diagnostics only.
func Scan(dir string) ([]File, error) {
	abs, err := fsutil.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), artifactExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: name, Path: filepath.Join(abs, name), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// DataPaths returns the gold and property dataset paths under dataDir.
func DataPaths(dataDir string) (gold, property string, err error) {
	abs, err := fsutil.ResolveDir(dataDir)
	if err != nil {
		return "", "", err
	}
	return filepath.Join(abs, GoldDataFile), filepath.Join(abs, PropertyDataFile), nil
}
