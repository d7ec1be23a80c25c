// Package diary renders the project work diary document. The builder is
// pure: every byte it needs, including the header image, arrives as an
// argument.
package diary

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
)

const (
	pageWidth  = 190.0
	rowHeight  = 7.0
	minRowsLog = 10
	minRows    = 5
)

// HeaderArt is the institutional banner. Image may be empty, in which
// case the title block renders as text only.
type HeaderArt struct {
	Image       []byte
	ImageType   string
	Institution string
	DocRef      string
}

// Build renders the diary for one team. Sections appear even when their
// data is empty, padded to a minimum row count so the printed document
// keeps its shape.
func Build(data dto.DiaryData, header HeaderArt) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	renderHeader(pdf, data, header)
	renderMembers(pdf, data)
	renderActionPlan(pdf)
	renderAttendance(pdf, data)
	renderExternalAttendance(pdf)
	renderProgressLog(pdf, data)
	renderReviewFeedback(pdf, data)
	renderMarksSummary(pdf, data)

	if pdf.Err() {
		return nil, fmt.Errorf("render diary: %w", pdf.Error())
	}
	return pdf, nil
}

// Render builds the diary and returns the encoded document.
func Render(data dto.DiaryData, header HeaderArt) ([]byte, error) {
	pdf, err := Build(data, header)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("encode diary: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *gofpdf.Fpdf, data dto.DiaryData, header HeaderArt) {
	if decodableImage(header.Image) {
		opts := gofpdf.ImageOptions{ImageType: header.ImageType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("header", opts, bytes.NewReader(header.Image))
		pdf.ImageOptions("header", 10, 12, pageWidth, 0, true, opts, 0, "")
		pdf.Ln(4)
	} else {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(pageWidth, 8, header.Institution, "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(pageWidth, 8, "PROJECT WORK DIARY", "", 1, "C", false, 0, "")
	if header.DocRef != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(pageWidth, 5, header.DocRef, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	title := data.Team.Topic
	if data.Project != nil && data.Project.Title != "" {
		title = data.Project.Title
	}
	pdf.CellFormat(pageWidth, 6, fmt.Sprintf("Project Title: %s", title), "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, 6, fmt.Sprintf("Batch: %s    Department: %s    Section: %s",
		data.Team.Code, data.Team.Department, data.Team.Section), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(pageWidth, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Arial", "B", 9)
	for i, label := range labels {
		pdf.CellFormat(widths[i], rowHeight, label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, values []string) {
	for i, value := range values {
		pdf.CellFormat(widths[i], rowHeight, value, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)
}

func padRows(pdf *gofpdf.Fpdf, widths []float64, written, min int) {
	blank := make([]string, len(widths))
	for i := written; i < min; i++ {
		tableRow(pdf, widths, blank)
	}
}

// decodableImage reports whether the bytes parse as JPEG or PNG. Anything
// else renders the text header instead.
func decodableImage(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Section I. The supervisor occupies the first row.
func renderMembers(pdf *gofpdf.Fpdf, data dto.DiaryData) {
	sectionTitle(pdf, "I. PROJECT TEAM")
	widths := []float64{15, 60, 50, 65}
	tableHeader(pdf, widths, []string{"S.No", "Name", "Register No.", "Role"})

	written := 0
	if data.Mentor != nil {
		tableRow(pdf, widths, []string{"1", data.Mentor.Name, data.Mentor.StaffID, "Supervisor"})
		written++
	}
	for _, student := range data.Students {
		role := "Member"
		if data.Team.TeamLead != nil && student.StudentID == *data.Team.TeamLead {
			role = "Team Lead"
		}
		written++
		tableRow(pdf, widths, []string{fmt.Sprintf("%d", written), student.Name, student.RegisterNumber, role})
	}
	padRows(pdf, widths, written, minRows)
	pdf.Ln(3)
}

// Section II is filled in by hand after printing.
func renderActionPlan(pdf *gofpdf.Fpdf) {
	sectionTitle(pdf, "II. ACTION PLAN")
	widths := []float64{15, 60, 55, 60}
	tableHeader(pdf, widths, []string{"S.No", "Phase", "Planned Period", "Remarks"})
	padRows(pdf, widths, 0, minRows)
	pdf.Ln(3)
}

// Section III marks, per student, the log dates on which an entry
// exists.
func renderAttendance(pdf *gofpdf.Fpdf, data dto.DiaryData) {
	sectionTitle(pdf, "III. ATTENDANCE RECORD")

	dates := distinctDates(data.Logs)
	logged := make(map[string]map[string]bool)
	for _, log := range data.Logs {
		key := log.Date.Format("02/01")
		if logged[log.StudentID] == nil {
			logged[log.StudentID] = make(map[string]bool)
		}
		logged[log.StudentID][key] = true
	}

	const maxDateCols = 10
	if len(dates) > maxDateCols {
		dates = dates[len(dates)-maxDateCols:]
	}

	nameWidth := 60.0
	dateWidth := (pageWidth - nameWidth) / maxDateCols
	widths := []float64{nameWidth}
	labels := []string{"Name"}
	for i := 0; i < maxDateCols; i++ {
		widths = append(widths, dateWidth)
		if i < len(dates) {
			labels = append(labels, dates[i])
		} else {
			labels = append(labels, "")
		}
	}
	tableHeader(pdf, widths, labels)

	written := 0
	for _, student := range data.Students {
		row := []string{student.Name}
		for i := 0; i < maxDateCols; i++ {
			mark := ""
			if i < len(dates) && logged[student.StudentID][dates[i]] {
				mark = "P"
			}
			row = append(row, mark)
		}
		tableRow(pdf, widths, row)
		written++
	}
	padRows(pdf, widths, written, minRows)
	pdf.Ln(3)
}

// Section IV is filled in by hand after printing.
func renderExternalAttendance(pdf *gofpdf.Fpdf) {
	sectionTitle(pdf, "IV. ATTENDANCE AT EXTERNAL CENTRE")
	widths := []float64{15, 45, 45, 45, 40}
	tableHeader(pdf, widths, []string{"S.No", "Date", "Centre", "Purpose", "Signature"})
	padRows(pdf, widths, 0, minRows)
	pdf.Ln(3)
}

// Section V narrates the approved day-to-day work, oldest first.
func renderProgressLog(pdf *gofpdf.Fpdf, data dto.DiaryData) {
	pdf.AddPage()
	sectionTitle(pdf, "V. PROGRESS LOG")
	widths := []float64{22, 40, 45, 45, 38}
	tableHeader(pdf, widths, []string{"Date", "Member", "Planned Work", "Completed Work", "Remarks"})

	for _, log := range data.Logs {
		tableRow(pdf, widths, []string{
			log.Date.Format("02/01/2006"),
			deref(log.StudentName),
			log.ExpectedTask,
			log.CompletedTask,
			deref(log.Comments),
		})
	}
	padRows(pdf, widths, len(data.Logs), minRowsLog)
	pdf.Ln(3)
}

// Section VI lists each evaluation in calendar order.
func renderReviewFeedback(pdf *gofpdf.Fpdf, data dto.DiaryData) {
	sectionTitle(pdf, "VI. REVIEW FEEDBACK")
	widths := []float64{35, 30, 85, 20, 20}
	tableHeader(pdf, widths, []string{"Review", "Date", "Feedback", "Marks", "Status"})

	for _, review := range data.Reviews {
		date := ""
		if review.CompletedOn != nil {
			date = review.CompletedOn.Format("02/01/2006")
		}
		marks := ""
		if review.Marks != nil {
			marks = fmt.Sprintf("%d", *review.Marks)
		}
		status := "Pending"
		if review.IsCompleted {
			status = "Done"
		}
		tableRow(pdf, widths, []string{review.Stage, date, deref(review.Result), marks, status})
	}
	padRows(pdf, widths, len(data.Reviews), minRowsLog)
	pdf.Ln(3)
}

// Section VII lists the first three review marks and the internal mark
// per student.
func renderMarksSummary(pdf *gofpdf.Fpdf, data dto.DiaryData) {
	sectionTitle(pdf, "VII. REVIEW & INTERNAL MARK")
	widths := []float64{32, 68, 20, 20, 20, 30}
	tableHeader(pdf, widths, []string{"Reg. No.", "Name of the Student", "I", "II", "III", "Internal Mark"})

	marks := reviewMarks(data.Reviews)
	internal := internalMark(data.Reviews)
	for _, student := range data.Students {
		tableRow(pdf, widths, []string{student.RegisterNumber, student.Name, marks[0], marks[1], marks[2], internal})
	}
	padRows(pdf, widths, len(data.Students), minRows)
	pdf.Ln(3)
}

// reviewMarks formats the first three review marks for the summary table.
func reviewMarks(reviews []models.Review) [3]string {
	var marks [3]string
	for i := 0; i < 3 && i < len(reviews); i++ {
		if m := reviews[i].Marks; m != nil {
			marks[i] = fmt.Sprintf("%d", *m)
		}
	}
	return marks
}

// internalMark is the mean of the first three review marks, counting only
// non-zero marks, rounded to the nearest integer. Empty when no review
// has a non-zero mark.
func internalMark(reviews []models.Review) string {
	var sum, count int
	for i := 0; i < 3 && i < len(reviews); i++ {
		if m := reviews[i].Marks; m != nil && *m != 0 {
			sum += *m
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%d", int(math.Round(float64(sum)/float64(count))))
}

func distinctDates(logs []dto.DiaryLog) []string {
	seen := make(map[string]time.Time)
	for _, log := range logs {
		seen[log.Date.Format("02/01")] = log.Date
	}
	dates := make([]string, 0, len(seen))
	for key := range seen {
		dates = append(dates, key)
	}
	sort.Slice(dates, func(i, j int) bool { return seen[dates[i]].Before(seen[dates[j]]) })
	return dates
}
