package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/javacomplete/java/codebase"
	"github.com/dhamidi/javacomplete/java/completion"
)

func newCompleteCmd() *cobra.Command {
	var offset, line, column, width int
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "List the completion candidates at a position of a .java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}
			caret := offset
			if line > 0 {
				if caret, err = offsetAt(text, line, column); err != nil {
					return err
				}
			}
			if caret < 0 || caret > len(text) {
				return fmt.Errorf("offset %d outside of %s (%d bytes)", caret, args[0], len(text))
			}

			root := viper.GetString("workspace.root")
			if root == "" {
				root = filepath.Dir(path)
			}
			cb := codebase.New(root)
			if err := cb.ScanAll(context.Background()); err != nil {
				log.Warningf("scan: %s", err)
			}
			cb.UpdateFile(path, text)

			res, err := cb.Complete(path, caret, completionOptions(), nil)
			if err != nil {
				return err
			}
			if res == nil {
				return nil
			}
			var f textItems
			if res.Env != nil {
				f.symtab = res.Env.Symtab()
			}
			items := completion.RenderAll[item](f, res.Candidates)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"items":      items,
					"incomplete": res.HasAdditionalItems,
				})
			case "text":
				if err := writeText(os.Stdout, items, width); err != nil {
					return err
				}
				if res.HasAdditionalItems {
					fmt.Println("(more with --all)")
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "byte offset of the caret")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "line of the caret, starting at 1")
	cmd.Flags().IntVarP(&column, "column", "c", 1, "column of the caret in characters, starting at 1")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().IntVarP(&width, "width", "w", 72, "wrap details at this width")

	return cmd
}

// offsetAt returns the byte offset of the 1-based line and column of text.
// Columns count characters.
func offsetAt(text []byte, line, column int) (int, error) {
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(text[off:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("line %d past the end of the file", line)
		}
		off += i + 1
	}
	for c := 1; c < column; c++ {
		if off >= len(text) || text[off] == '\n' {
			return 0, fmt.Errorf("column %d past the end of line %d", column, line)
		}
		_, size := utf8.DecodeRune(text[off:])
		off += size
	}
	return off, nil
}
