//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/mm"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	logLevel   int
	blackWhite bool
	dataDir    string
	profCPU    bool
	profMEM    bool
	profiler   interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   vv.CLINAME,
	Short: "Topics over time for a corpus of speeches",
	Long: `Turns a JSON dump of speeches into a topics-over-time table:
ingest ==> clean ==> model (LDA) ==> aggregate (mean topic weight per year).
Each stage reads and writes flat files under the data folder.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  launch,
	PersistentPostRunE: land,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", vv.CONFIGDEFAULT, "configuration file")
	pf.IntVarP(&logLevel, "loglevel", "l", vv.DEFAULTLOGLEVEL, fmt.Sprintf("message level: %d (mandatory only) to %d (everything)", mm.MSGMAND, mm.MSGTMI))
	pf.BoolVar(&blackWhite, "bw", false, "no color in the terminal output")
	pf.StringVar(&dataDir, "data", "", "data folder; overrides paths.data")
	pf.BoolVar(&profCPU, "profile-cpu", false, "[debugging] write a cpu profile to the current directory")
	pf.BoolVar(&profMEM, "profile-mem", false, "[debugging] write a memory profile to the current directory")
}

// launch - configuration, then profiling
func launch(cmd *cobra.Command, _ []string) error {
	const (
		MSG1 = "profiling cpu use"
		MSG2 = "profiling memory use"
		MSG3 = "only one profile at a time: ignoring --profile-mem"
	)

	ov := lnch.Overrides{BW: blackWhite, ProfileCPU: profCPU, ProfileMEM: profMEM}
	if cmd.Flags().Changed("loglevel") {
		ov.LogLevel = &logLevel
	}
	if cmd.Flags().Changed("data") {
		ov.Data = &dataDir
	}

	if err := lnch.ConfigAtLaunch(cfgPath, cmd.Flags().Changed("config"), ov); err != nil {
		return err
	}
	lnch.Msg.TMI(lnch.VersionLine(*lnch.Config))

	switch {
	case lnch.Config.ProfileCPU:
		if lnch.Config.ProfileMEM {
			lnch.Msg.WARN(MSG3)
		}
		lnch.Msg.NOTE(MSG1)
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case lnch.Config.ProfileMEM:
		lnch.Msg.NOTE(MSG2)
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	}
	return nil
}

func land(_ *cobra.Command, _ []string) error {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
	return nil
}
