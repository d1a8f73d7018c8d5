package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/javacomplete/java/codebase"
)

const version = "0.1.0"

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			jdkSrc := viper.GetString("lsp.jdk-sources")
			if jdkSrc == "" {
				jdkSrc = os.Getenv("JAVA_SRC")
			}
			server := codebase.NewLSPServer(codebase.LSPConfig{
				Version:    version,
				Options:    completionOptions(),
				Watch:      viper.GetBool("lsp.watch"),
				JDKSources: jdkSrc,
			})
			return server.RunStdio()
		},
	}

	cmd.Flags().Bool("watch", true, "follow changes to files on disk")
	cmd.Flags().String("jdk-sources", "", "src.zip of the JDK to index (default is $JAVA_SRC)")
	viper.BindPFlag("lsp.watch", cmd.Flags().Lookup("watch"))
	viper.BindPFlag("lsp.jdk-sources", cmd.Flags().Lookup("jdk-sources"))

	return cmd
}
