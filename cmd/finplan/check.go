package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"finplan/internal/manager"
	"finplan/internal/registry"
	"finplan/pkg/types"
)

// checkReport is what `finplan check` prints: the load report plus every
// artifact file found in the models directory.
type checkReport struct {
	Models     types.ModelStatus `json:"models"`
	Files      []registry.File   `json:"files"`
	Unexpected []string          `json:"unexpected,omitempty"`
	ScanError  string            `json:"scan_error,omitempty"`
}

// buildCheckReport scans dir and flags artifacts no role would load, such as
// leftovers from renamed roles.
func buildCheckReport(rep manager.LoadReport, dir string, names registry.Names) checkReport {
	out := checkReport{Models: rep.API(), Files: []registry.File{}}
	files, err := registry.Scan(dir)
	if err != nil {
		out.ScanError = err.Error()
		return out
	}
	out.Files = files
	want := map[string]bool{}
	if layout, err := registry.Resolve(dir, names); err == nil {
		for _, role := range registry.Roles {
			want[layout.Path(role)] = true
		}
	}
	for _, f := range files {
		if !want[f.Path] {
			out.Unexpected = append(out.Unexpected, f.Name)
		}
	}
	return out
}

func writeCheckReport(w io.Writer, r checkReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func newCheckCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the model artifacts once and report their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			log, closer := newLogger(cfg.Log)
			defer closer.Close()

			a := newApp(cfg, log)
			_, rep, loadErr := a.manager.LoadAll(cfg.ModelsDir)
			report := buildCheckReport(rep, cfg.ModelsDir, cfg.Artifacts)
			if len(report.Unexpected) > 0 {
				log.Warn().Strs("files", report.Unexpected).Msg("artifacts not used by any role")
			}
			if err := writeCheckReport(os.Stdout, report); err != nil {
				return err
			}
			if loadErr != nil {
				return fmt.Errorf("model set incomplete: %w", loadErr)
			}
			return nil
		},
	}
}
