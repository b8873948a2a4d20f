package main

import (
	"fmt"
	"os"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset/inputsample"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*growCmdConfig
}

type stdoutFeatureValueRequester struct{}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{&growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the decision for a sample answering questions",
		Long:  `Grow a tree from a dataset and use it to predict the decision for a sample, answering only the questions on the path the tree follows`,
		Run: func(cmd *cobra.Command, args []string) {
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
			sample := inputsample.New(os.Stdin, data.attributes, stdoutFeatureValueRequester{})
			decision, err := t.Predict(ctx, sample)
			if err == tree.ErrCannotPredictFromSample {
				fmt.Println("No decision can be predicted for the sample")
				os.Exit(4)
			}
			if err != nil {
				config.Fail(5, err)
			}
			fmt.Printf("Predicted %s is %s\n", data.label.Name(), decision)
		},
	}
	config.addDataFlags(cmd)
	config.addStrategyFlags(cmd)
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.input == "" {
		return fmt.Errorf("required input flag was not set: STDIN is used to answer questions")
	}
	return pcc.dataCmdConfig.Validate()
}

func (stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	fmt.Printf("Please provide the sample's %s:\n", f.Name())
	if df, ok := f.(*feature.DiscreteFeature); ok && len(df.AvailableValues()) > 0 {
		fmt.Printf("(valid values are %v)\n", df.AvailableValues())
	}
	return nil
}

func (stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	fmt.Printf("%q is not a valid value for the sample's %s.", value, f.Name())
	if df, ok := f.(*feature.DiscreteFeature); ok && len(df.AvailableValues()) > 0 {
		fmt.Printf(" Please provide one of %v.", df.AvailableValues())
	}
	fmt.Println()
	return nil
}
