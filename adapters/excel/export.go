package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"teampulse/domain/analytics"
	"teampulse/internal/errors"
)

// Exporter writes a company analytics snapshot as an xlsx workbook with an
// overview sheet, one row per team, and the generated insight list.
type Exporter struct{}

// NewExporter creates an analytics exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

const (
	sheetOverview = "Overview"
	sheetTeams    = "Teams"
	sheetInsights = "Insights"
)

// Write renders the workbook to w
func (e *Exporter) Write(w io.Writer, company analytics.CompanyWideAnalytics, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeOverview(f, company, generatedAt); err != nil {
		return err
	}
	if err := e.writeTeams(f, company.Teams); err != nil {
		return err
	}
	if err := e.writeInsights(f, company.Insights); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Overview
	f.DeleteSheet("Sheet1")
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func (e *Exporter) writeOverview(f *excelize.File, company analytics.CompanyWideAnalytics, generatedAt time.Time) error {
	if _, err := f.NewSheet(sheetOverview); err != nil {
		return errors.Wrap(err, "creating overview sheet")
	}

	rows := [][]interface{}{
		{"Generated", generatedAt.Format(time.RFC3339)},
		{"Overall completion rate (%)", company.OverallCompletionRate},
		{"Overall mood score (/5)", company.OverallMoodScore},
		{"Total tasks completed", company.TotalTasksCompleted},
		{"Total check-ins", company.TotalCheckIns},
		{"Teams", len(company.Teams)},
	}
	if company.TopPerformingTeam != nil {
		rows = append(rows, []interface{}{"Top performing team", company.TopPerformingTeam.TeamName})
	}
	if company.TeamNeedingAttention != nil {
		rows = append(rows, []interface{}{"Team needing attention", company.TeamNeedingAttention.TeamName})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetOverview, cell, &row); err != nil {
			return errors.Wrap(err, "writing overview row")
		}
	}
	return nil
}

func (e *Exporter) writeTeams(f *excelize.File, teams []analytics.TeamAnalytics) error {
	if _, err := f.NewSheet(sheetTeams); err != nil {
		return errors.Wrap(err, "creating teams sheet")
	}

	header := []interface{}{
		"Team", "Members", "Assigned", "Completed", "In progress", "Overdue",
		"Completion rate (%)", "Avg completion (days)", "Velocity (tasks/week)",
		"Avg mood (/5)", "Avg energy (/5)", "Stress index (%)", "Check-ins",
		"Wellness-productivity corr",
	}
	if err := f.SetSheetRow(sheetTeams, "A1", &header); err != nil {
		return errors.Wrap(err, "writing teams header")
	}

	for i, t := range teams {
		row := []interface{}{
			t.TeamName, t.MemberCount, t.TasksAssigned, t.TasksCompleted,
			t.TasksInProgress, t.TasksOverdue, t.CompletionRate,
			t.AvgCompletionTime, t.VelocityPerWeek, t.AvgMoodScore,
			t.AvgEnergyLevel, t.StressIndex, t.CheckInCount,
			t.WellnessProductivityCorr,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetTeams, cell, &row); err != nil {
			return errors.Wrapf(err, "writing team row %d", i)
		}
	}
	return nil
}

func (e *Exporter) writeInsights(f *excelize.File, insights []analytics.Insight) error {
	if _, err := f.NewSheet(sheetInsights); err != nil {
		return errors.Wrap(err, "creating insights sheet")
	}

	header := []interface{}{"ID", "Type", "Priority", "Title", "Description", "Suggested action"}
	if err := f.SetSheetRow(sheetInsights, "A1", &header); err != nil {
		return errors.Wrap(err, "writing insights header")
	}

	for i, ins := range insights {
		row := []interface{}{
			ins.ID, string(ins.Type), string(ins.Priority),
			ins.Title, ins.Description, ins.SuggestedAction,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetInsights, cell, &row); err != nil {
			return errors.Wrapf(err, "writing insight row %d", i)
		}
	}
	return nil
}
