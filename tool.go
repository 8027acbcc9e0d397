package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gopherjs/emitmap/build"
)

// Version of the emitmap tool.
const Version = "0.3.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		options = &build.Options{}
		verbose bool
		comment string
	)

	flagVerbose := pflag.NewFlagSet("", 0)
	flagVerbose.BoolVarP(&verbose, "verbose", "v", false, "print debug information")

	rootCmd := &cobra.Command{
		Use:           "emitmap",
		Long:          "emitmap replays recorded compiler emissions and produces source maps for them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(flagVerbose)

	cmdReplay := &cobra.Command{
		Use:   "replay [trace files]",
		Short: "replay emission traces and write generated files with source maps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := build.ParseComment(comment)
			if err != nil {
				return reportError(cmd, err)
			}
			options.Comment = c
			for {
				s, err := build.NewSession(options)
				if err != nil {
					return reportError(cmd, err)
				}
				_, err = s.ReplayAll(context.Background(), args)
				if !options.Watch {
					return reportError(cmd, err)
				}
				reportError(cmd, err)
				s.WaitForChange()
			}
		},
	}
	cmdReplay.Flags().BoolVar(&options.Inline, "inline", false, "embed the source map and the original sources into the generated file")
	cmdReplay.Flags().StringVar(&options.RootURL, "root-url", "", "sourceRoot recorded in the source map")
	cmdReplay.Flags().StringVar(&comment, "comment", "css", "sourceMappingURL comment syntax: css or js")
	cmdReplay.Flags().StringVarP(&options.OutputDir, "output", "o", ".", "directory to write generated files into")
	cmdReplay.Flags().BoolVarP(&options.Watch, "watch", "w", false, "watch for changes and replay again")

	cmdInspect := &cobra.Command{
		Use:   "inspect [generated or .map file]",
		Short: "print the mappings of a source map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := build.LoadMap(args[0])
			if err != nil {
				return reportError(cmd, err)
			}
			printMap(cmd.OutOrStdout(), m)
			return nil
		},
	}

	cmdVersion := &cobra.Command{
		Use:   "version",
		Short: "print emitmap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "emitmap %s\n", Version)
		},
	}

	rootCmd.AddCommand(cmdReplay, cmdInspect, cmdVersion)
	return rootCmd
}

// reportError prints a non-nil error to the command's error stream and returns
// it unchanged.
func reportError(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error:"), err)
	}
	return err
}

func printMap(w io.Writer, m *build.LoadedMap) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "%s\n", m.Location)
	fmt.Fprintf(w, "file: %s\n", m.File)
	if m.SourceRoot != "" {
		fmt.Fprintf(w, "sourceRoot: %s\n", m.SourceRoot)
	}

	header.Fprintln(w, "sources:")
	for i, source := range m.Sources {
		embedded := ""
		if i < len(m.SourcesContent) && m.SourcesContent[i] != nil {
			embedded = fmt.Sprintf(" (%d bytes embedded)", len(*m.SourcesContent[i]))
		}
		fmt.Fprintf(w, "  %s%s\n", source, embedded)
	}

	header.Fprintln(w, "mappings:")
	for _, mapping := range m.DecodedMappings() {
		if mapping.OriginalFile == "" {
			fmt.Fprintf(w, "  %d:%d -> -\n", mapping.GeneratedLine, mapping.GeneratedColumn)
			continue
		}
		name := ""
		if mapping.OriginalName != "" {
			name = " " + mapping.OriginalName
		}
		fmt.Fprintf(w, "  %d:%d -> %s:%d:%d%s\n", mapping.GeneratedLine, mapping.GeneratedColumn,
			mapping.OriginalFile, mapping.OriginalLine, mapping.OriginalColumn, name)
	}
}
