package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hiresight/resume-relevance/internal/models"
)

// ResultExporter writes a batch result table as CSV or XLSX for download.
type ResultExporter interface {
	WriteCSV(w io.Writer, rows []models.ResultRow) error
	WriteXLSX(w io.Writer, jobTitle string, rows []models.ResultRow) error
}

type resultExporter struct{}

func NewResultExporter() ResultExporter {
	return &resultExporter{}
}

var exportHeader = []string{
	"Resume File", "Total Score", "Verdict", "Matched Skills", "Missing Skills", "Suggestion", "Objective", "Error",
}

// WriteCSV implements ResultExporter.
func (e *resultExporter) WriteCSV(w io.Writer, rows []models.ResultRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := exportRecord(row)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteXLSX implements ResultExporter.
func (e *resultExporter) WriteXLSX(w io.Writer, jobTitle string, rows []models.ResultRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if jobTitle != "" {
		if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("Relevance results for %s", jobTitle)); err != nil {
			return fmt.Errorf("failed to write title: %w", err)
		}
	}

	headerRow := 2
	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, row := range rows {
		record := exportRecord(row)
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write result cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func exportRecord(row models.ResultRow) []string {
	score := ""
	if row.TotalScore != nil {
		score = strconv.FormatFloat(*row.TotalScore, 'f', 2, 64)
	}

	matched := make([]string, 0, len(row.MatchedSkills))
	for _, pair := range row.MatchedSkills {
		matched = append(matched, fmt.Sprintf("%s=%s", pair.JDSkill, pair.ResumeSkill))
	}

	return []string{
		row.ResumeFile,
		score,
		row.Verdict,
		strings.Join(matched, "; "),
		strings.Join(row.MissingSkills, "; "),
		row.Suggestion,
		row.Objective,
		row.Error,
	}
}
