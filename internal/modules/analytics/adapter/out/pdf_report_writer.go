package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"lockedin/internal/modules/analytics/domain"
	analyticsout "lockedin/internal/modules/analytics/port/out"
)

type PDFReportWriter struct{}

func NewPDFReportWriter() analyticsout.ReportWriter {
	return PDFReportWriter{}
}

func (PDFReportWriter) WriteWeekly(_ context.Context, path string, report domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Weekly focus report", props.Text{Top: 3, Style: consts.Bold, Align: consts.Center, Size: 16})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				first, last := report.Weekly.Days[0].Date, report.Weekly.Days[len(report.Weekly.Days)-1].Date
				m.Text(fmt.Sprintf("%s - %s", first, last), props.Text{Top: 2, Align: consts.Center, Size: 11})
			})
		})
	})

	summary := [][]string{
		{"Focus hours today", formatHours(report.TodayHours)},
		{"Goals worked on today", strconv.Itoa(report.Today.GoalsWorkedOn)},
		{"Current streak", fmt.Sprintf("%d day(s)", report.Streak)},
		{"Hours this week", formatHours(report.Weekly.TotalHours)},
		{"Average per day", formatHours(report.Weekly.AvgPerDay)},
		{"Most productive day", report.Weekly.MostProductiveDay},
	}
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text("Summary", props.Text{Top: 5, Style: consts.Bold, Size: 13})
		})
	})
	m.TableList([]string{"Metric", "Value"}, summary, props.TableList{
		HeaderProp:           props.TableListContent{Size: 10, GridSizes: []uint{8, 4}},
		ContentProp:          props.TableListContent{Size: 10, GridSizes: []uint{8, 4}},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
	})

	days := make([][]string, 0, len(report.Weekly.Days))
	for _, d := range report.Weekly.Days {
		days = append(days, []string{d.Date, weekday(d.Date), fmt.Sprintf("%.0f min", d.Minutes)})
	}
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text("Last seven days", props.Text{Top: 5, Style: consts.Bold, Size: 13})
		})
	})
	m.TableList([]string{"Date", "Day", "Focus"}, days, props.TableList{
		HeaderProp:           props.TableListContent{Size: 10, GridSizes: []uint{4, 4, 4}},
		ContentProp:          props.TableListContent{Size: 10, GridSizes: []uint{4, 4, 4}},
		Align:                consts.Center,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Generated "+report.GeneratedAt.Format(time.RFC1123), props.Text{Top: 4, Size: 8, Align: consts.Right})
		})
	})

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write weekly report: %w", err)
	}
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64) + " h"
}

func weekday(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
