package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/pipeline/param"
	"github.com/askiada/go-cvpg/pkg/transform"
)

func newParamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "params <transform>",
		Short: "Show the params of the stages of a transform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := a.registry.New(args[0], transform.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return writeParams(cmd.OutOrStdout(), stages)
		},
	}
}

// writeParams prints one line per param, in the form accepted by run --set.
func writeParams(out io.Writer, stages []pipeline.Stage) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAM\tKIND\tVALUE\tHELP")
	for _, s := range stages {
		p, ok := s.(transform.Parametrized)
		if !ok || p.Params() == nil {
			continue
		}
		name := pipeline.StageName(s)
		err := p.Params().Each(func(key string, prm param.Param) error {
			_, err := fmt.Fprintf(tw, "%s.%s\t%s\t%s\t%s\n", name, key, prm.Kind(), prm, prm.HelpText())
			return err
		})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
