package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/flapek/decision-trees-ID3-C4.5/evaluation"
	"github.com/spf13/cobra"
)

const defaultTestFraction = 0.2

type testCmdConfig struct {
	*growCmdConfig
	fraction float64
	seed     int64
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{growCmdConfig: &growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test a tree grown from part of a dataset on the rest",
		Long:  `Split a dataset into training and test sets, grow a tree on the training set and print its confusion matrix and metrics on the test set`,
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
			rng := rand.New(rand.NewSource(config.randomSeed()))
			report, err := evaluation.HoldoutValidate(ctx, data.dataset, config.fraction, rng, config.growFunc(data.attributes, data.label), data.label)
			if err != nil {
				config.Fail(3, err)
			}
			fold := report.Folds[0]
			config.Logf("Trained on %d samples, tested on %d", fold.Training, fold.Test)
			fmt.Printf("%v\n%v", fold.Matrix, fold.Summary)
		},
	}
	config.addDataFlags(cmd)
	config.addStrategyFlags(cmd)
	cmd.PersistentFlags().Float64VarP(&(config.fraction), "fraction", "f", defaultTestFraction, "fraction of the samples used as test set")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random split (a time based one if 0)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.fraction <= 0 || tcc.fraction >= 1 {
		return fmt.Errorf("fraction must be in the (0, 1) interval, got %v", tcc.fraction)
	}
	return tcc.dataCmdConfig.Validate()
}

func (tcc *testCmdConfig) randomSeed() int64 {
	return seedOrNow(tcc.seed, tcc.rootCmdConfig)
}

func seedOrNow(seed int64, rcc *rootCmdConfig) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rcc.Logf("Using random seed %d", seed)
	return seed
}
