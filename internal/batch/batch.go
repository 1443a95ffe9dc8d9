// Package batch runs file-to-file conversions for the reify command.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/mutation"
	"github.com/belgraph/reifier/pkg/nodelink"
	"github.com/belgraph/reifier/pkg/reify"

	"golang.org/x/sync/errgroup"
)

var ErrDuplicateOutput = errors.New("inputs share an output file")

type ConvertParams struct {
	// OutDir defaults to the directory of each input.
	OutDir   string
	Parallel int
	Pretty   bool
}

// Result describes one converted file.
type Result struct {
	Input  string                  `json:"input"`
	Output string                  `json:"output"`
	Report *nodelink.ReportSummary `json:"report"`
}

// OutputPath returns where the reified form of input is written:
// tau.json becomes tau.reified.json.
func OutputPath(input, outDir string) string {
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, name+".reified.json")
}

// Convert reifies every input file. Files are processed concurrently up to
// params.Parallel; the first failure cancels the rest and is returned.
// Results keep the order of inputs. Inputs that would write the same output
// file are rejected before anything is written.
func Convert(ctx context.Context, inputs []string, params ConvertParams) ([]Result, error) {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		output := filepath.Clean(OutputPath(input, params.OutDir))
		if prev, ok := seen[output]; ok {
			return nil, fmt.Errorf("%s and %s both write %s: %w", prev, input, output, ErrDuplicateOutput)
		}
		seen[output] = input
	}

	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(params.Parallel, 1))
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := convertFile(input, params)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func convertFile(input string, params ConvertParams) (Result, error) {
	src, err := nodelink.ReadFile(input)
	if err != nil {
		return Result{}, err
	}

	g, report := reify.ReifyWithReport(src)
	data, err := nodelink.MarshalReified(g, nodelink.Meta{Name: src.Name, Version: src.Version}, &report, params.Pretty)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", input, err)
	}

	output := OutputPath(input, params.OutDir)
	if err := nodelink.WriteFile(output, data); err != nil {
		return Result{}, err
	}

	logger.Info("[Batch] Reified network",
		"input", input,
		"output", output,
		"statements", report.Reified,
		"unmatched", len(report.Unmatched),
	)
	return Result{Input: input, Output: output, Report: nodelink.Summarize(report)}, nil
}

type InferParams struct {
	// Output defaults to overwriting the input.
	Output      string
	Orthologies bool
	Collapse    bool
	Prune       bool
	Pretty      bool
}

// InferResult counts what Infer changed.
type InferResult struct {
	Merged int `json:"merged"`
	Added  int `json:"added"`
	Pruned int `json:"pruned"`
	Nodes  int `json:"nodes"`
	Edges  int `json:"edges"`
}

// Infer completes the central dogma of a graph file, then optionally
// collapses it onto proteins and prunes leaf genes and RNA. Orthologous
// nodes are merged first when requested.
func Infer(input string, params InferParams) (InferResult, error) {
	g, err := nodelink.ReadFile(input)
	if err != nil {
		return InferResult{}, err
	}

	var res InferResult
	if params.Orthologies {
		res.Merged = mutation.CollapseOrthologies(g)
	}
	res.Added = mutation.InferCentralDogma(g)
	if params.Prune {
		res.Pruned = mutation.Prune(g)
	}
	if params.Collapse {
		mutation.CollapseByCentralDogma(g)
	}
	res.Nodes, res.Edges = g.NumberOfNodes(), g.NumberOfEdges()

	data, err := nodelink.Marshal(g, params.Pretty)
	if err != nil {
		return InferResult{}, fmt.Errorf("encode %s: %w", input, err)
	}
	output := params.Output
	if output == "" {
		output = input
	}
	if err := nodelink.WriteFile(output, data); err != nil {
		return InferResult{}, err
	}
	return res, nil
}
