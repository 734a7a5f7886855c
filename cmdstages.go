//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/spf13/cobra"
	"time"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract speaker, date, title and text from the raw JSON dump",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := stageingest(cmd.Context(), *lnch.Config)
		return err
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Tokenize, filter by language, lemmatize and drop stopwords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := *lnch.Config
		ss, err := loadspeeches(cfg)
		if err != nil {
			return err
		}
		_, err = stageclean(cmd.Context(), cfg, ss)
		return err
	},
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Fit the LDA topic model and write the per-document topic weights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := *lnch.Config
		docs, err := loaddocuments(cfg)
		if err != nil {
			return err
		}
		_, err = stagemodel(cmd.Context(), cfg, docs)
		return err
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Average the topic weights per year",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := *lnch.Config
		docs, err := loaddocuments(cfg)
		if err != nil {
			return err
		}
		md, err := loadmodeled(cfg)
		if err != nil {
			return err
		}
		_, err = stageaggregate(cmd.Context(), cfg, docs, md)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "ingest, clean, model and aggregate in one go",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(ingestCmd, cleanCmd, modelCmd, aggregateCmd, runCmd)
}

// runAll - the stages hand their results straight to one another; every artifact is still written
func runAll(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := *lnch.Config

	ss, err := stageingest(ctx, cfg)
	if err != nil {
		return err
	}
	docs, err := stageclean(ctx, cfg, ss)
	if err != nil {
		return err
	}
	md, err := stagemodel(ctx, cfg, docs)
	if err != nil {
		return err
	}
	if _, err = stageaggregate(ctx, cfg, docs, md); err != nil {
		return err
	}
	Msg.Timer("R", "run complete", start, start)
	return nil
}
