package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javacomplete/java/index"
)

func newIndexCmd() *cobra.Command {
	var packages, typePrefix string
	var listPackages bool

	cmd := &cobra.Command{
		Use:   "index [dir|src.zip]",
		Short: "Show what the class index knows",
		Long: `Builds the class index from the bundled platform classes and, when given,
the sources below dir or inside a source archive, then lists its packages
or types.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix := index.NewWithJDK()
			if len(args) == 1 {
				if err := scanInto(ix, args[0]); err != nil {
					log.Warningf("%s", err)
				}
			}

			if listPackages {
				for _, p := range ix.PackageNames(packages) {
					fmt.Println(p)
				}
				return nil
			}

			handles := ix.DeclaredTypes(index.Prefix(typePrefix))
			sort.Slice(handles, func(i, j int) bool {
				return handles[i].QualifiedName < handles[j].QualifiedName
			})
			for _, h := range handles {
				fmt.Printf("%-10s %s\n", h.Kind, h.QualifiedName)
			}
			fmt.Fprintf(os.Stderr, "%d types, %d files\n", len(handles), len(ix.Files()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listPackages, "packages", "p", false, "list packages instead of types")
	cmd.Flags().StringVar(&packages, "package-prefix", "", "only list packages starting with this")
	cmd.Flags().StringVarP(&typePrefix, "types", "t", "", "only list types whose simple name starts with this")

	return cmd
}

func scanInto(ix *index.Index, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ix.ScanDir(context.Background(), path)
	}
	switch filepath.Ext(path) {
	case ".java":
		return ix.ScanFile(path)
	case ".zip", ".jar":
		return ix.ScanArchive(path)
	}
	return fmt.Errorf("unsupported file type: %s", path)
}
