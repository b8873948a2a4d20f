package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*dataCmdConfig
	trainingOutput string
	testOutput     string
	fraction       float64
	seed           int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into a training set and a test set",
		Long:  `Randomly split a dataset into a training set and a test set, writing them to text files or databases`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.Elapsed(cmd.Name(), time.Now())
			err := config.Validate()
			if err != nil {
				config.Fail(1, err)
			}
			ctx := config.Context()
			data, err := config.loadData(ctx)
			if err != nil {
				config.Fail(2, err)
			}
			defer data.close()
			rng := rand.New(rand.NewSource(seedOrNow(config.seed, config.rootCmdConfig)))
			training, test, err := dataset.Holdout(ctx, data.dataset, config.fraction, rng)
			if err != nil {
				config.Fail(3, err)
			}
			features := append(data.attributes[:len(data.attributes):len(data.attributes)], data.label)
			n, err := config.writeDataset(ctx, config.testOutput, test, features)
			if err != nil {
				config.Fail(4, err)
			}
			config.Logf("Wrote %d samples to the test set %s", n, config.testOutput)
			n, err = config.writeDataset(ctx, config.trainingOutput, training, features)
			if err != nil {
				config.Fail(5, err)
			}
			config.Logf("Wrote %d samples to the training set %s", n, config.trainingOutput)
		},
	}
	config.addDataFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.trainingOutput), "output", "o", "", "path to a text file, a SQLite3 file (.db), a postgresql:// URL or a mongodb:// URL to write the training set to (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.testOutput), "test-output", "s", "", "path to a text file, a SQLite3 file (.db), a postgresql:// URL or a mongodb:// URL to write the test set to (required)")
	cmd.PersistentFlags().Float64VarP(&(config.fraction), "fraction", "f", defaultTestFraction, "fraction of the samples written to the test set")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random split (a time based one if 0)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.testOutput == "" {
		return fmt.Errorf("required test-output flag was not set")
	}
	if scc.testOutput == scc.trainingOutput {
		return fmt.Errorf("training and test outputs must be different")
	}
	if scc.fraction <= 0 || scc.fraction >= 1 {
		return fmt.Errorf("fraction must be in the (0, 1) interval, got %v", scc.fraction)
	}
	for _, output := range []string{scc.trainingOutput, scc.testOutput} {
		if isDatabase(output) && scc.metadataInput == "" {
			return fmt.Errorf("metadata flag is required to write to %s", output)
		}
	}
	return scc.dataCmdConfig.Validate()
}
