package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/flapek/decision-trees-ID3-C4.5/evaluation"
	"github.com/spf13/cobra"
)

const defaultFolds = 10

type crossValidateCmdConfig struct {
	*growCmdConfig
	folds int
	seed  int64
}

func crossValidateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossValidateCmdConfig{growCmdConfig: &growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:     "crossvalidate",
		Aliases: []string{"cv"},
		Short:   "Cross-validate trees grown from a dataset",
		Long:    `Split a dataset into k folds, grow a tree on every k-1 of them, test it on the remaining one and print the metrics of every fold along their mean and variance`,
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
			report, err := evaluation.CrossValidate(ctx, data.dataset, config.folds, rng, config.growFunc(data.attributes, data.label), data.label)
			if err != nil {
				config.Fail(3, err)
			}
			fmt.Print(report)
		},
	}
	config.addDataFlags(cmd)
	config.addStrategyFlags(cmd)
	cmd.PersistentFlags().IntVarP(&(config.folds), "folds", "k", defaultFolds, "number of folds")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random split (a time based one if 0)")
	return cmd
}

func (cvcc *crossValidateCmdConfig) Validate() error {
	if cvcc.folds < 2 {
		return fmt.Errorf("folds must be at least 2, got %d", cvcc.folds)
	}
	return cvcc.dataCmdConfig.Validate()
}
