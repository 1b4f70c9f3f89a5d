package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jjss-seva/registration-service/internal/models"
)

const exportTimeFormat = "2006-01-02 15:04:05"

// exportHeaders is the fixed column order of both export formats.
var exportHeaders = []string{
	"Application ID", "Full Name", "Mobile", "Email", "Aadhaar",
	"Present Address", "Present City", "Present District", "Present State", "Present Pincode",
	"Permanent Address", "Permanent City", "Permanent District", "Permanent State", "Permanent Pincode",
	"Same As Present", "Location Link", "Has Vehicle", "Vehicle Types", "Education", "Registered At",
}

// freeTextColumns are the columns whose values may contain commas or
// quotes and are therefore always quoted in the CSV output.
var freeTextColumns = map[int]bool{
	1:  true, // Full Name
	5:  true, // Present Address
	10: true, // Permanent Address
	16: true, // Location Link (map links embed a comma)
}

// exportRow flattens a registration into the fixed column order.
func exportRow(r *models.Registration) []string {
	locationLink := ""
	if r.LocationLink != nil {
		locationLink = *r.LocationLink
	}

	return []string{
		r.ApplicationID,
		r.FullName,
		r.Mobile,
		r.Email,
		r.Aadhaar,
		r.PresentAddress,
		r.PresentCity,
		r.PresentDistrict,
		r.PresentState,
		r.PresentPincode,
		r.PermanentAddress,
		r.PermanentCity,
		r.PermanentDistrict,
		r.PermanentState,
		r.PermanentPincode,
		yesNo(r.SameAsPresent),
		locationLink,
		yesNo(r.HasVehicle),
		strings.Join(r.VehicleTypes, "; "),
		r.Education,
		r.CreatedAt.Format(exportTimeFormat),
	}
}

// buildCSV serializes registrations with a header row, quoting free-text
// fields and doubling embedded quotes.
func buildCSV(registrations []models.Registration) string {
	lines := make([]string, 0, len(registrations)+1)
	lines = append(lines, strings.Join(exportHeaders, ","))

	for i := range registrations {
		row := exportRow(&registrations[i])
		for col := range row {
			if freeTextColumns[col] {
				row[col] = csvQuote(row[col])
			}
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func csvQuote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

// buildXLSX serializes registrations into a single-sheet workbook with
// the same column order as the CSV export.
func buildXLSX(registrations []models.Registration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registrations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range registrations {
		row := exportRow(&registrations[i])
		values := make([]interface{}, len(row))
		for col, v := range row {
			values[col] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("coordinates for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// exportFilename builds the dated download name, e.g.
// jjss-registrations-2026-08-28.csv.
func exportFilename(extension string) string {
	return fmt.Sprintf("jjss-registrations-%s.%s", time.Now().Format("2006-01-02"), extension)
}
