//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"github.com/e-gun/speechtopics/internal/lda"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"io"
	"strconv"
)

// NewTOTChart - one line per topic, years along the x axis
func NewTOTChart(pp []str.YearlyTopicProfile, k int) (*charts.Line, error) {
	const (
		FAIL      = "year %d carries %d means; expected %d"
		TITLESTR  = "Topics over time"
		SUBTITLE  = "mean topic weight per year; %d topics"
		LEFTALIGN = "20"
		SAVETYPE  = "svg"
		SAVESTR   = "Save to file..."
	)

	years := make([]string, len(pp))
	for i, p := range pp {
		if len(p.Means) != k {
			return nil, fmt.Errorf(FAIL, p.Year, len(p.Means), k)
		}
		years[i] = strconv.Itoa(p.Year)
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  TITLESTR,
		Title: SAVESTR,
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.TOTCHARTWD, Height: vv.TOTCHARTHT}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR, Subtitle: fmt.Sprintf(SUBTITLE, k), Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Bottom: "0"}),
		charts.WithToolboxOpts(tbo),
	)

	line.SetXAxis(years)
	labels := lda.TopicLabels(k)
	for t := 0; t < k; t++ {
		data := make([]opts.LineData, len(pp))
		for i, p := range pp {
			data[i] = opts.LineData{Value: p.Means[t]}
		}
		line.AddSeries(labels[t], data)
	}
	return line, nil
}

// Chart - render the topics-over-time table as a standalone html page
func Chart(pp []str.YearlyTopicProfile, k int, w io.Writer) error {
	line, err := NewTOTChart(pp, k)
	if err != nil {
		return err
	}
	return line.Render(w)
}
