//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/speechtopics/internal/mm"
)

func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.Configure(Config.LogLevel, Config.BlackAndWhite)
}
