package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	childrendomain "sponsorship-app-go/internal/domain/children"
)

const childrenSheet = "Children"

var childrenExportHeader = []string{
	"First Name",
	"Last Name",
	"Date of Birth",
	"Gender",
	"Class",
	"Father Full Name",
	"Mother Full Name",
	"Address",
	"Contact",
	"School",
	"Sponsored",
	"Date Entered Register",
}

// ExportChildren streams the filtered register as an xlsx workbook. The same
// query parameters as the listing apply, so the download matches what the
// user sees on screen.
func (h *Handlers) ExportChildren(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Children.ListAll(r.Context(), childrenFilter(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(childrenSheet)
	if err != nil {
		h.respondError(w, err)
		return
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range childrenExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			h.respondError(w, err)
			return
		}
		if err := f.SetCellValue(childrenSheet, cell, header); err != nil {
			h.respondError(w, err)
			return
		}
	}

	for i, child := range rows {
		schoolName := ""
		if child.School != nil {
			schoolName = child.School.Name
		}
		sponsored := "no"
		if child.IsSponsored {
			sponsored = "yes"
		}

		values := []interface{}{
			child.FirstName,
			child.LastName,
			formatDate(child.DateOfBirth),
			child.Gender,
			child.Class,
			child.FatherFullName,
			child.MotherFullName,
			deref(child.Address),
			deref(child.Contact),
			schoolName,
			sponsored,
			child.DateEnteredRegister.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				h.respondError(w, err)
				return
			}
			if err := f.SetCellValue(childrenSheet, cell, value); err != nil {
				h.respondError(w, err)
				return
			}
		}
	}

	filename := fmt.Sprintf("children-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	if _, err := f.WriteTo(w); err != nil {
		h.log.InternalError("children export write failed", err)
	}
}

type importRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importChildrenResponse struct {
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []importRowError `json:"errors"`
}

// ImportChildren accepts an xlsx upload laid out like the export (minus the
// computed columns) and registers one child per row. Bad rows are skipped and
// reported; good rows still go through.
func (h *Handlers) ImportChildren(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file upload is required")
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is not a valid xlsx workbook")
		return
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if len(rows) < 2 {
		writeError(w, http.StatusBadRequest, "workbook has no data rows")
		return
	}

	result := importChildrenResponse{Errors: []importRowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2

		input, err := h.importRowToInput(r, row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, importRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if _, err := h.Children.Create(r.Context(), input); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, importRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Created++
	}

	h.log.Info("children import finished", "created", result.Created, "skipped", result.Skipped)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) importRowToInput(r *http.Request, row []string) (childrendomain.CreateInput, error) {
	cell := func(index int) string {
		if index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}

	schoolName := cell(9)
	if schoolName == "" {
		return childrendomain.CreateInput{}, fmt.Errorf("school column is empty")
	}
	schoolID, err := h.Children.SchoolIDByName(r.Context(), schoolName)
	if err != nil {
		return childrendomain.CreateInput{}, fmt.Errorf("unknown school %q", schoolName)
	}

	dateOfBirth, err := parseDate(cell(2))
	if err != nil {
		return childrendomain.CreateInput{}, fmt.Errorf("invalid date of birth %q", cell(2))
	}

	input := childrendomain.CreateInput{
		FirstName:      cell(0),
		LastName:       cell(1),
		DateOfBirth:    dateOfBirth,
		Gender:         strings.ToLower(cell(3)),
		Class:          cell(4),
		FatherFullName: cell(5),
		MotherFullName: cell(6),
		SchoolID:       schoolID,
	}
	if address := cell(7); address != "" {
		input.Address = &address
	}
	if contact := cell(8); contact != "" {
		input.Contact = &contact
	}
	return input, nil
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
