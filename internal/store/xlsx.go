//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"fmt"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXSHEET = "topics_over_time"
)

// WriteTopicsOverTimeXLSX - the topics_over_time table as a spreadsheet with the same columns as the csv
func WriteTopicsOverTimeXLSX(path string, pp []str.YearlyTopicProfile, k int) error {
	const (
		FAIL = "xlsx export: %w"
	)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSHEET); err != nil {
		return fmt.Errorf(FAIL, err)
	}

	cell := func(col, row int, v any) error {
		c, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(XLSXSHEET, c, v)
	}

	for i, h := range TOTHeader(k) {
		if err := cell(i+1, 1, h); err != nil {
			return fmt.Errorf(FAIL, err)
		}
	}

	for r, p := range pp {
		row := r + 2
		if err := cell(1, row, p.Year); err != nil {
			return fmt.Errorf(FAIL, err)
		}
		for i, m := range p.Means {
			if err := cell(i+2, row, m); err != nil {
				return fmt.Errorf(FAIL, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf(FAIL, err)
	}
	return nil
}
