//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/prep"
	"github.com/e-gun/speechtopics/internal/vec"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	describeTop   int
	neighborCount int
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List the most frequent terms of the cleaned corpus",
	Args:  cobra.NoArgs,
	RunE:  runDescribe,
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors TERM",
	Short: "Train word2vec on the cleaned corpus and list the nearest neighbors of TERM",
	Args:  cobra.ExactArgs(1),
	RunE:  runNeighbors,
}

func init() {
	describeCmd.Flags().IntVarP(&describeTop, "top", "n", vv.DESCRIBETOPN, "number of terms to list")
	neighborsCmd.Flags().IntVarP(&neighborCount, "count", "n", vv.VECTORNEIGHBORS, "number of neighbors to list")
	rootCmd.AddCommand(describeCmd, neighborsCmd)
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	docs, err := loaddocuments(*lnch.Config)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	for i, tc := range prep.Describe(docs, describeTop) {
		cmd.Print(p.Sprintf("%3d  %-24s %d\n", i+1, tc.Term, tc.Count))
	}
	return nil
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	docs, err := loaddocuments(*lnch.Config)
	if err != nil {
		return err
	}
	nn, err := vec.Neighbors(docs, args[0], neighborCount)
	if err != nil {
		return err
	}
	for _, n := range nn {
		cmd.Printf("%3d  %-24s %.4f\n", n.Rank, n.Word, n.Similarity)
	}
	return nil
}
