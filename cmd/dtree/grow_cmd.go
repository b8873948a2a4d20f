package main

import (
	"context"
	"fmt"
	"os"
	"time"

	dtree "github.com/flapek/decision-trees-ID3-C4.5"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/evaluation"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*dataCmdConfig
	output   string
	majority bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a tree from a dataset choosing the attribute with the highest information gain ratio on every node, and print it`,
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
			t, err := config.grow(ctx, data.dataset, data.attributes, data.label)
			if err != nil {
				config.Fail(3, err)
			}
			leaves, depth, err := t.Leaves(ctx)
			if err != nil {
				config.Fail(4, err)
			}
			config.Logf("Grown a tree with %d leaves and depth %d", leaves, depth)
			display, err := t.Display(ctx)
			if err != nil {
				config.Fail(4, err)
			}
			if err = writeOutput(config.output, display); err != nil {
				config.Fail(5, err)
			}
		},
	}
	config.addDataFlags(cmd)
	config.addStrategyFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the tree will be written (defaults to STDOUT)")
	return cmd
}

func (gcc *growCmdConfig) addStrategyFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&(gcc.majority), "majority", false, "label leaves with their most frequent decision instead of the first one found")
}

func (gcc *growCmdConfig) strategy() *dtree.Strategy {
	if gcc.majority {
		return &dtree.Strategy{Labeler: dtree.MajorityLabeler()}
	}
	return dtree.DefaultStrategy()
}

func (gcc *growCmdConfig) grow(ctx context.Context, s dataset.Dataset, attributes []feature.Feature, label feature.Feature) (*tree.Tree, error) {
	gcc.Logf("Growing tree to predict %s from %d attributes", label.Name(), len(attributes))
	return dtree.Grow(ctx, s, attributes, label, gcc.strategy())
}

// growFunc adapts grow to evaluation.GrowFunc.
func (gcc *growCmdConfig) growFunc(attributes []feature.Feature, label feature.Feature) evaluation.GrowFunc {
	return func(ctx context.Context, training dataset.Dataset) (evaluation.Classifier, error) {
		t, err := gcc.grow(ctx, training, attributes, label)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	defer f.Close()
	_, err = fmt.Fprint(f, content)
	return err
}
