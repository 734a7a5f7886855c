//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"os"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	if err := rootCmd.Execute(); err != nil {
		lnch.Msg.CRIT(err.Error())
		lnch.Msg.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	lnch.Msg.Sync()
}
