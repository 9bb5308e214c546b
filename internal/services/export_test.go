package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"hiresight/resume-relevance/internal/models"
)

func sampleRows() []models.ResultRow {
	score := 83.33
	return []models.ResultRow{
		{
			ResumeFile: "alice.pdf",
			TotalScore: &score,
			Verdict:    "High",
			MatchedSkills: []models.SkillPair{
				{JDSkill: "Python", ResumeSkill: "Python"},
				{JDSkill: "SQL", ResumeSkill: "SQL expert"},
			},
			MissingSkills: []string{"aws"},
			Suggestion:    "To improve, focus on aws if relevant to Data Analyst.",
			Objective:     "Analyst with four years of reporting experience.",
		},
		{
			ResumeFile: "bob.docx",
			Error:      "ExtractionFailed: text extraction failed",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := NewResultExporter().WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "Resume File" {
		t.Errorf("header = %v", records[0])
	}

	alice := records[1]
	if alice[0] != "alice.pdf" || alice[1] != "83.33" || alice[2] != "High" {
		t.Errorf("alice row = %v", alice)
	}
	if alice[3] != "Python=Python; SQL=SQL expert" {
		t.Errorf("matched skills cell = %q", alice[3])
	}
	if alice[4] != "aws" {
		t.Errorf("missing skills cell = %q", alice[4])
	}
	if alice[6] != "Analyst with four years of reporting experience." {
		t.Errorf("objective cell = %q", alice[6])
	}

	// Failed rows carry the error marker and no score.
	bob := records[2]
	if bob[0] != "bob.docx" || bob[1] != "" || bob[2] != "" {
		t.Errorf("bob row = %v", bob)
	}
	if bob[7] != "ExtractionFailed: text extraction failed" {
		t.Errorf("bob error cell = %q", bob[7])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := NewResultExporter().WriteXLSX(&buf, "Data Analyst", sampleRows()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Results", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Relevance results for Data Analyst" {
		t.Errorf("title = %q", title)
	}

	header, err := f.GetCellValue("Results", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if header != "Resume File" {
		t.Errorf("header = %q", header)
	}

	file, err := f.GetCellValue("Results", "A3")
	if err != nil {
		t.Fatal(err)
	}
	if file != "alice.pdf" {
		t.Errorf("first data cell = %q", file)
	}

	objective, err := f.GetCellValue("Results", "G3")
	if err != nil {
		t.Fatal(err)
	}
	if objective != "Analyst with four years of reporting experience." {
		t.Errorf("objective cell = %q", objective)
	}

	errCell, err := f.GetCellValue("Results", "H4")
	if err != nil {
		t.Fatal(err)
	}
	if errCell != "ExtractionFailed: text extraction failed" {
		t.Errorf("error cell = %q", errCell)
	}
}
