package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pyparse"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.py>",
	Short: "parse a Python file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		tree, err := pyparse.Parse(pysrc.New(path, string(data)))
		if err != nil {
			return err
		}

		pyast.Dump(os.Stdout, tree)
		return nil
	},
}
