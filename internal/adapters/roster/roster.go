// Package roster reads and validates the participant list the engine
// consumes. The input is an Excel workbook with Name and Score columns; a
// trailing asterisk on a name marks the participant as advantaged.
package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/fairsplit/internal/domain/model"
)

// AdvantageMarker is the name suffix flagging an advantaged participant.
const AdvantageMarker = "*"

// Column headers expected in the input sheet.
const (
	colName  = "name"
	colScore = "score"
)

// Parse builds a participant from a raw name and score, stripping the
// advantage marker. The caller assigns the ID.
func Parse(id int, name string, score float64) (model.Participant, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return model.Participant{}, fmt.Errorf("%w: %q", ErrInvalidScore, name)
	}
	advantaged := strings.HasSuffix(name, AdvantageMarker)
	clean := strings.TrimRight(name, AdvantageMarker)
	return model.Participant{
		ID:         id,
		Name:       strings.TrimSpace(clean),
		Score:      model.ScaleScore(score),
		Advantaged: advantaged,
	}, nil
}

// FromRows parses participants out of sheet rows. The first row containing
// both a Name and a Score header starts the table; blank rows are skipped.
func FromRows(rows [][]string) ([]model.Participant, error) {
	nameCol, scoreCol, headerRow := -1, -1, -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case colName:
				nameCol = j
			case colScore:
				scoreCol = j
			}
		}
		if nameCol >= 0 && scoreCol >= 0 {
			headerRow = i
			break
		}
		nameCol, scoreCol = -1, -1
	}
	if headerRow < 0 {
		return nil, ErrMissingColumns
	}

	participants := make([]model.Participant, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		if nameCol >= len(row) || scoreCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		rawScore := strings.TrimSpace(row[scoreCol])
		if name == "" && rawScore == "" {
			continue
		}
		score, err := strconv.ParseFloat(rawScore, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q has score %q", ErrInvalidScore, name, rawScore)
		}
		p, err := Parse(len(participants), name, score)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return nil, ErrEmptyRoster
	}
	return participants, nil
}

// ReadExcel loads participants from the first sheet of an .xlsx workbook.
func ReadExcel(path string) ([]model.Participant, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyRoster
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read roster sheet %s: %w", sheets[0], err)
	}
	return FromRows(rows)
}

// ValidateGroupCount checks the group count against the roster before any
// worker starts.
func ValidateGroupCount(participants []model.Participant, groupCount int) error {
	if len(participants) == 0 {
		return ErrEmptyRoster
	}
	if groupCount <= 0 || groupCount > len(participants) {
		return fmt.Errorf("%w: %d groups for %d participants", ErrBadGroupCount, groupCount, len(participants))
	}
	return nil
}
