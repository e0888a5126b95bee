package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/config"
)

type rootOptions struct {
	configPath   string
	dryRun       bool
	jsonOutput   bool
	verbose      bool
	logFormat    string
	sampleConfig bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mediasort [flags] [DIRECTORY]",
		Short: "Sort media and documents into a tidy directory tree",
		Long: `mediasort moves every file under DIRECTORY into one of three trees:

  sorted/<W>x<H>_<FPS>fps/      video, by resolution and frame rate
  media/images|audio/<type>/    images and audio, by format
  documents/pdf|text|other/     everything else

Each file is copied, verified byte for byte, and only then removed from its
original location. Running it again on the same directory is a no-op.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.sampleConfig {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.SampleConfig())
				return err
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSort(cmd, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show where files would go without moving anything")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the run summary as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format override (console or json)")
	flags.BoolVar(&opts.sampleConfig, "sample-config", false, "Print an annotated sample configuration and exit")

	return rootCmd
}
