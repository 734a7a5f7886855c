//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/speechtopics"

	// SAMPLECONFIG - written by "speechtopics config" when no params.yaml exists
	SAMPLECONFIG = `preprocessing:
  punctuation: [".", ",", ";", ":", "!", "?", "'", "\"", "(", ")", "-", "–", "—", "’", "“", "”", "...", "…"]
  stopwords: ["mr", "mrs", "also", "would", "could", "one", "unhcr", "high", "commissioner"]
  df:
    min: 5
    max: 0.5
  languages: [english, spanish, french]
  keep_languages: [en]
  lemmatizer: morphy
phrases:
  min_count: 20
  threshold: 10
lda:
  num_topics: 10
  passes: 10
  iterations: 100
  seed: 42
  minimum_probability: 0.01
  top_words: 8
ingest:
  input: "UNHCR speeches/speeches.json"
  skip_malformed: false
aggregate:
  strict: false
  tolerance: 0.05
paths:
  data: data
store:
  sqlite: ""
vectors:
  dim: 100
  window: 8
  iter: 15
  min_count: 5
  model: skipgram
loglevel: 2
`
)
