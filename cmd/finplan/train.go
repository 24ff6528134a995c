package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"finplan/internal/training"
)

func newTrainCmd(g *globalOpts) *cobra.Command {
	var sampleSize int
	cmd := &cobra.Command{
		Use:     "train",
		Short:   "Train all models from the CSV datasets and write the artifacts",
		Example: "  finplan train --data-dir data --models-dir models --sample-size 20000",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			log, closer := newLogger(cfg.Log)
			defer closer.Close()

			a := newApp(cfg, log)
			res, err := a.trainer.TrainAll(cmd.Context(), sampleSize)
			if err != nil && !training.IsReloadAfterTrain(err) {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(summary(res)); encErr != nil {
				return encErr
			}
			return err
		},
	}
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "Property rows to sample (0 = configured default)")
	return cmd
}

type trainSummary struct {
	GoldMAE            float64  `json:"gold_mae"`
	GoldMonths         int      `json:"gold_months"`
	PropertyMAE        float64  `json:"property_mae"`
	PropertyR2         float64  `json:"property_r2"`
	ClassifierAccuracy float64  `json:"classifier_accuracy"`
	RowsUsed           int      `json:"rows_used"`
	Version            string   `json:"model_version,omitempty"`
	Artifacts          []string `json:"artifacts"`
	Elapsed            string   `json:"elapsed"`
}

func summary(res training.Result) trainSummary {
	s := trainSummary{
		GoldMAE:            res.GoldMAE,
		GoldMonths:         res.GoldMonths,
		PropertyMAE:        res.PropertyMAE,
		PropertyR2:         res.PropertyR2,
		ClassifierAccuracy: res.ClassifierAccuracy,
		RowsUsed:           res.RowsUsed,
		Version:            res.Version,
		Artifacts:          []string{},
		Elapsed:            res.Elapsed.String(),
	}
	for _, a := range res.Artifacts {
		s.Artifacts = append(s.Artifacts, a.Path+" ("+a.HumanSize()+")")
	}
	return s
}
