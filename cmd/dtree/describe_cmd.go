package main

import (
	"fmt"
	"io"
	"os"
	"time"

	dtree "github.com/flapek/decision-trees-ID3-C4.5"
	"github.com/spf13/cobra"
)

func describeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &dataCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the attributes of a dataset",
		Long:  `Print, for every attribute of a dataset, the number of samples with each value, the entropy of the label and the information gain ratio of splitting on it`,
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
			partitions, err := dtree.Describe(ctx, data.dataset, data.attributes, data.label)
			if err != nil {
				config.Fail(3, err)
			}
			writePartitions(os.Stdout, partitions)
		},
	}
	config.addDataFlags(cmd)
	return cmd
}

func writePartitions(w io.Writer, partitions []*dtree.Partition) {
	for _, p := range partitions {
		fmt.Fprintf(w, "Attribute: %s\n", p.Feature.Name())
		for _, vc := range p.Values {
			fmt.Fprintf(w, "\t%s: %d\n", vc.Value, vc.Count)
		}
		fmt.Fprintf(w, "\tentropy: %.4f\n\tinformation: %.4f\n\tgain: %.4f\n\tsplit info: %.4f\n\tgain ratio: %.4f\n",
			p.InfoT, p.InfoAnT, p.Gain, p.SplitInfo, p.GainRatio)
	}
}
