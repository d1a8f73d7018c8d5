package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javacomplete/java/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(filename))
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse java file: no syntax tree")
			}

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if includePositions {
					fmt.Println(node.StringWithPositions())
				} else {
					fmt.Println(node.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			for _, e := range p.Errors() {
				fmt.Fprintln(os.Stderr, e)
			}
			if p.Incomplete() {
				fmt.Fprintln(os.Stderr, "input ended inside a construct")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "show token positions")

	return cmd
}
