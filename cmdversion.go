//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/spf13/cobra"
)

var showCopyright bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		lnch.PrintVersion(w, *lnch.Config)
		lnch.PrintBuildInfo(w)
		if showCopyright {
			lnch.PrintCopyright(w)
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config [PATH]",
	Short: "Write a sample configuration file (default: " + vv.CONFIGDEFAULT + ")",
	Args:  cobra.MaximumNArgs(1),
	// an unreadable params.yaml should not stop us from writing a fresh one elsewhere
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		p := vv.CONFIGDEFAULT
		if len(args) == 1 {
			p = args[0]
		}
		if err := lnch.WriteSampleConfig(p); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", p)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&showCopyright, "copyright", false, "also print the license notice")
	rootCmd.AddCommand(versionCmd, configCmd)
}
