// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package cmd implements the jsonrepair command-line front end: a thin
// external collaborator over the jsonrepair library, not part of the hard
// engineering of the repair engine itself.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cflynn/jsonrepair"
)

var (
	flagInline      bool
	flagOutput      string
	flagEnsureASCII bool
	flagIndent      int
	flagStrict      bool

	log = logrus.StandardLogger()

	rootCmd = &cobra.Command{
		Use:          "jsonrepair [file]",
		Short:        "jsonrepair",
		SilenceUsage: true,
		Long:         `Decode JSON that purports to be well-formed but isn't, the way LLM output tends to be. Reads a file or standard input, repairs it, and writes the result.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&flagInline, "inline", false, "rewrite the input file in place (requires a file argument)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "write the result to this path instead of standard output")
	rootCmd.Flags().BoolVar(&flagEnsureASCII, "ensure_ascii", false, "escape non-ASCII runes in the output")
	rootCmd.Flags().IntVar(&flagIndent, "indent", 0, "indentation width for the output; 0 means compact")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "turn repairs into fatal errors instead of applying them")
}

// Execute runs the CLI. Exit code is 0 on success, including a successful
// repair; non-zero when strict mode raises, an I/O error occurs, or the
// command line is invalid (such as --inline without a file argument).
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	if flagInline && path == "" {
		return fmt.Errorf("jsonrepair: --inline requires a file argument")
	}

	input, err := readInput(path)
	if err != nil {
		log.WithError(err).Error("reading input")
		return err
	}

	opts := jsonrepair.Options{
		Strict:      flagStrict,
		EnsureASCII: flagEnsureASCII,
		Indent:      flagIndent,
	}
	out, entries, err := jsonrepair.RepairWithLog(string(input), opts)
	if err != nil {
		if errors.Is(err, jsonrepair.ErrEmptyInput) {
			log.Debug("input contained nothing to repair")
			return writeOutput(path, "")
		}
		log.WithError(err).Error("repair failed")
		return err
	}
	if n := len(entries); n > 0 {
		log.WithField("repairs", n).Info("applied heuristic repairs")
		for _, e := range entries {
			log.WithField("window", e.Window).Debug(e.Context)
		}
	}

	return writeOutput(path, out)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path, out string) error {
	switch {
	case flagInline:
		return os.WriteFile(path, []byte(out), 0o644)
	case flagOutput != "":
		return os.WriteFile(flagOutput, []byte(out), 0o644)
	default:
		_, err := fmt.Println(out)
		return err
	}
}
