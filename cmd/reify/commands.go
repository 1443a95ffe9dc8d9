package main

import (
	"encoding/json"
	"fmt"

	"github.com/belgraph/reifier/internal/batch"
	"github.com/belgraph/reifier/internal/config"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/nodelink"

	"github.com/spf13/cobra"
)

func newConvertCommand(cfg *config.Config) *cobra.Command {
	var params batch.ConvertParams

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Write the reified form of each graph next to it as <name>.reified.json",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := batch.Convert(cmd.Context(), args, params)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d statements\t%d unmatched\n", r.Output, r.Report.Reified, r.Report.Unmatched)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&params.OutDir, "out", "o", "", "directory for the reified files")
	cmd.Flags().IntVarP(&params.Parallel, "parallel", "p", cfg.Parallel, "number of files converted at once")
	cmd.Flags().BoolVar(&params.Pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newInferCommand() *cobra.Command {
	var params batch.InferParams

	cmd := &cobra.Command{
		Use:   "infer <file>",
		Short: "Add missing transcription and translation edges to a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := batch.Infer(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %d nodes, added %d edges, pruned %d nodes: %d nodes, %d edges\n",
				res.Merged, res.Added, res.Pruned, res.Nodes, res.Edges)
			return nil
		},
	}

	cmd.Flags().StringVarP(&params.Output, "out", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().BoolVar(&params.Orthologies, "orthologies", false, "merge orthologous nodes before inference")
	cmd.Flags().BoolVar(&params.Collapse, "collapse", false, "collapse genes and RNA onto their proteins")
	cmd.Flags().BoolVar(&params.Prune, "prune", false, "remove leaf genes and RNA")
	cmd.Flags().BoolVar(&params.Pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two graphs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := nodelink.ReadFile(args[0])
			if err != nil {
				return err
			}
			right, err := nodelink.ReadFile(args[1])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(comparison.Diff(left, right))
		},
	}
}
