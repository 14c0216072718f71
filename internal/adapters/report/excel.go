package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/engine/race"
)

// WriteExcel writes the race result as an .xlsx workbook with one sheet per
// scenario. Each sheet lists every group's members with their scores,
// followed by the group averages and the scenario cost.
func WriteExcel(path string, result *race.Result) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // closed after save

	for i, sr := range orderedScenarios(result) {
		sheet := sheetName(sr)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeScenario(f, sheet, sr); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func writeScenario(f *excelize.File, sheet string, sr race.ScenarioResult) error {
	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Group", "Name", "Score", "Advantaged"}
	for c, h := range headers {
		if err := set(c+1, 1, h); err != nil {
			return err
		}
	}

	s := sr.Solution
	row := 2
	for g := 0; g < s.GroupCount(); g++ {
		members := s.Members(g)
		sort.Slice(members, func(i, j int) bool { return members[i].Score > members[j].Score })
		for _, p := range members {
			if err := set(1, row, g+1); err != nil {
				return err
			}
			if err := set(2, row, displayName(p)); err != nil {
				return err
			}
			if err := set(3, row, model.UnscaleScore(p.Score)); err != nil {
				return err
			}
			if err := set(4, row, p.Advantaged); err != nil {
				return err
			}
			row++
		}
	}

	row++
	if err := set(1, row, "Group Averages"); err != nil {
		return err
	}
	row++
	for g := 0; g < s.GroupCount(); g++ {
		if err := set(1, row, g+1); err != nil {
			return err
		}
		if err := set(2, row, s.GroupAverage(g)); err != nil {
			return err
		}
		row++
	}

	row++
	if err := set(1, row, "Cost"); err != nil {
		return err
	}
	return set(2, row, sr.Cost)
}
