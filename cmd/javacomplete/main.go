package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/javacomplete/java/completion"
)

var log = commonlog.GetLogger("javacomplete")

var (
	cfgFile   string
	verbosity int
	logFile   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "javacomplete",
		Short:        "Code completion for Java sources",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)
			if used := viper.ConfigFileUsed(); used != "" {
				log.Infof("using config file %s", used)
			}
		},
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.javacomplete.yaml)")
	flags.CountVarP(&verbosity, "verbose", "v", "log more, repeat for debug output")
	flags.StringVar(&logFile, "log", "", "write the log to this file instead of stderr")
	flags.Int("source", 21, "Java release the sources are written for")
	flags.Bool("show-deprecated", false, "offer deprecated symbols")
	flags.Bool("case-sensitive", true, "match prefixes case sensitively")
	flags.Bool("subword", false, "match subwords when camel case matching fails")
	flags.Bool("all", false, "offer every symbol instead of narrowing to the context")
	flags.Bool("combined", false, "offer unimported types next to imported ones")
	flags.Bool("skip-access-check", false, "offer inaccessible symbols too")
	flags.String("root", "", "workspace root to index (default is the directory of the file)")

	for key, flag := range map[string]string{
		"source.level":                 "source",
		"completion.show-deprecated":   "show-deprecated",
		"completion.case-sensitive":    "case-sensitive",
		"completion.subword":           "subword",
		"completion.all-symbols":       "all",
		"completion.combined":          "combined",
		"completion.skip-access-check": "skip-access-check",
		"workspace.root":               "root",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newReplCmd())

	return rootCmd
}

// initConfig reads the config file and JAVACOMPLETE_* environment
// variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".javacomplete")
	}

	viper.SetEnvPrefix("JAVACOMPLETE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// completionOptions builds request options from flags, environment and
// config file, in that order of precedence.
func completionOptions() completion.Options {
	opts := completion.DefaultOptions()
	opts.SourceLevel = viper.GetInt("source.level")
	opts.ShowDeprecated = viper.GetBool("completion.show-deprecated")
	opts.CaseSensitive = viper.GetBool("completion.case-sensitive")
	opts.Subword = viper.GetBool("completion.subword")
	if viper.GetBool("completion.all-symbols") {
		opts.Flags |= completion.AllSymbols
	}
	if viper.GetBool("completion.combined") {
		opts.Flags |= completion.Combined
	}
	if viper.GetBool("completion.skip-access-check") {
		opts.Flags |= completion.SkipAccessibilityCheck
	}
	return opts
}
