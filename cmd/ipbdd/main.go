// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command ipbdd builds, inspects and renders IP address sets backed by the
// ipbdd ROBDD engine.
package main

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/ipbdd/ipbdd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	rootCmd := &cobra.Command{
		Use:   "ipbdd",
		Short: "Build, inspect and render ROBDD-backed IP address sets",
	}

	var lenient, haltOnError bool

	buildCmd := &cobra.Command{
		Use:   "build [input]",
		Short: "Build a set from a line-oriented address list and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return runBuild(sugar, args[0], output, lenient, haltOnError)
		},
	}
	buildCmd.Flags().String("output", "", "path to write the serialized set to (required)")
	buildCmd.Flags().BoolVar(&lenient, "lenient", false, "mask host bits instead of rejecting misaligned networks")
	buildCmd.Flags().BoolVar(&haltOnError, "halt-on-error", false, "stop at the first malformed input line")
	buildCmd.MarkFlagRequired("output")

	catCmd := &cobra.Command{
		Use:   "cat [set]",
		Short: "Print the CIDR summarization of a serialized set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(sugar, args[0])
		},
	}

	dotCmd := &cobra.Command{
		Use:   "dot [set]",
		Short: "Render a serialized set as a GraphViz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return runDot(sugar, args[0], output)
		},
	}
	dotCmd.Flags().String("output", "-", "path to write the DOT graph to, - for stdout")

	statCmd := &cobra.Command{
		Use:   "stat [set]",
		Short: "Print size and allocator statistics for a serialized set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(sugar, args[0])
		},
	}

	rootCmd.AddCommand(buildCmd, catCmd, dotCmd, statCmd)
	if err := rootCmd.Execute(); err != nil {
		sugar.Error(err)
		os.Exit(1)
	}
}

func runBuild(log *zap.SugaredLogger, input, output string, lenient, haltOnError bool) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	mode := ipbdd.Strict
	if lenient {
		mode = ipbdd.Lenient
	}
	c := ipbdd.New(ipbdd.WithMode(mode))
	s := ipbdd.NewSet(c)
	defer s.Close()

	if err := loadText(log, s, in, haltOnError); err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := ipbdd.Save(out, c, s.Root()); err != nil {
		return err
	}
	log.Infow("built set", "input", input, "output", output, "addresses", s.Size().String(), "nodes", s.NodeCount())
	return nil
}

func loadSet(path string) (*ipbdd.Cache, *ipbdd.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	c := ipbdd.New()
	root, err := ipbdd.Load(c, f)
	if err != nil {
		return nil, nil, err
	}
	return c, ipbdd.FromRoot(c, root), nil
}

func runCat(log *zap.SugaredLogger, path string) error {
	_, s, err := loadSet(path)
	if err != nil {
		return err
	}
	return s.Iterate(func(p netip.Prefix) error {
		fmt.Println(p.String())
		return nil
	})
}

func runDot(log *zap.SugaredLogger, path, output string) error {
	c, s, err := loadSet(path)
	if err != nil {
		return err
	}
	out := os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return ipbdd.WriteDot(out, c, s.Root())
}

func runStat(log *zap.SugaredLogger, path string) error {
	c, s, err := loadSet(path)
	if err != nil {
		return err
	}
	fmt.Printf("addresses: %s\n", s.Size().String())
	fmt.Printf("nodes:     %d\n", s.NodeCount())
	fmt.Println(c.Stats())
	return nil
}
