package services

import (
	"context"
	"encoding/csv"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jjss-seva/registration-service/internal/models"
	"github.com/jjss-seva/registration-service/internal/repositories"
)

func sampleRegistrations() []models.Registration {
	registeredAt := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	link := "https://maps.google.com/?q=9.9312,76.2673"

	return []models.Registration{
		{
			ApplicationID:   "JJSS2026100001",
			FullName:        "Asha Nair",
			Mobile:          "9876543210",
			Email:           "asha@example.com",
			PresentDistrict: "Ernakulam",
			PresentState:    "Kerala",
			PermanentState:  "Kerala",
			HasVehicle:      true,
			VehicleTypes:    []string{"Two Wheeler", "Four Wheeler"},
			LocationLink:    &link,
			CreatedAt:       registeredAt,
		},
		{
			ApplicationID:   "JJSS2026100002",
			FullName:        "Ravi Kumar",
			Mobile:          "9123456780",
			Email:           "ravi@example.com",
			PresentDistrict: "Bengaluru Urban",
			PresentState:    "Karnataka",
			PermanentState:  "Kerala",
			HasVehicle:      false,
			CreatedAt:       registeredAt,
		},
		{
			ApplicationID:   "JJSS2026100003",
			FullName:        "Meera Pillai",
			Mobile:          "9988776655",
			Email:           "meera@example.com",
			PresentDistrict: "Thiruvananthapuram",
			PresentState:    "Kerala",
			PermanentState:  "Kerala",
			HasVehicle:      false,
			CreatedAt:       registeredAt,
		},
	}
}

func newTestDashboard(list []models.Registration) DashboardService {
	repo := newMockRegistrationRepo()
	repo.listResult = list
	repo.statsResult = &repositories.RegistrationStats{Total: int64(len(list)), WithVehicle: 1, StatesCovered: 2}
	return NewDashboardService(&mockRepository{registration: repo}, slog.New(slog.DiscardHandler))
}

func TestDashboardList_Filters(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	tests := []struct {
		name    string
		filters ListFilters
		wantIDs []string
	}{
		{"no filters", ListFilters{}, []string{"JJSS2026100001", "JJSS2026100002", "JJSS2026100003"}},
		{"search by name fragment", ListFilters{Search: "asha"}, []string{"JJSS2026100001"}},
		{"search by mobile", ListFilters{Search: "9123"}, []string{"JJSS2026100002"}},
		{"search by application id", ListFilters{Search: "jjss2026100003"}, []string{"JJSS2026100003"}},
		{"search matches nothing", ListFilters{Search: "zzz"}, []string{}},
		{"state matches either address", ListFilters{State: "Kerala"}, []string{"JJSS2026100001", "JJSS2026100002", "JJSS2026100003"}},
		{"state present only", ListFilters{State: "Karnataka"}, []string{"JJSS2026100002"}},
		{"district substring", ListFilters{District: "bengaluru"}, []string{"JJSS2026100002"}},
		{"vehicle yes", ListFilters{Vehicle: "yes"}, []string{"JJSS2026100001"}},
		{"vehicle no", ListFilters{Vehicle: "no"}, []string{"JJSS2026100002", "JJSS2026100003"}},
		{"filters intersect", ListFilters{State: "Kerala", Vehicle: "yes"}, []string{"JJSS2026100001"}},
		{"intersection can be empty", ListFilters{State: "Karnataka", Vehicle: "yes"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.List(context.Background(), &tt.filters)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if resp.Total != 3 {
				t.Errorf("Total = %d, want 3 regardless of filters", resp.Total)
			}
			if resp.Filtered != len(tt.wantIDs) {
				t.Fatalf("Filtered = %d, want %d", resp.Filtered, len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if resp.Registrations[i].ApplicationID != want {
					t.Errorf("result[%d] = %q, want %q", i, resp.Registrations[i].ApplicationID, want)
				}
			}
		})
	}
}

func TestDashboardList_ClearingFiltersRestoresAll(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	narrowed, err := svc.List(context.Background(), &ListFilters{State: "Karnataka"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if narrowed.Filtered != 1 {
		t.Fatalf("Filtered = %d, want 1", narrowed.Filtered)
	}

	restored, err := svc.List(context.Background(), &ListFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if restored.Filtered != 3 {
		t.Errorf("cleared filters must restore the full list, got %d", restored.Filtered)
	}
}

func TestDashboardStats(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 3 || stats.WithVehicle != 1 || stats.StatesCovered != 2 {
		t.Errorf("unexpected stats: %+v", stats.RegistrationStats)
	}
}

func TestExportCSV_Format(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	file, err := svc.ExportCSV(context.Background(), &ListFilters{})
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	wantName := "jjss-registrations-" + time.Now().Format("2006-01-02") + ".csv"
	if file.Filename != wantName {
		t.Errorf("filename = %q, want %q", file.Filename, wantName)
	}

	lines := strings.Split(string(file.Content), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Application ID,Full Name,Mobile,") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], ",Education,Registered At") {
		t.Errorf("unexpected header tail: %q", lines[0])
	}

	if !strings.Contains(lines[1], `"Two Wheeler; Four Wheeler"`) && !strings.Contains(lines[1], "Two Wheeler; Four Wheeler") {
		t.Errorf("vehicle types not joined with semicolons: %q", lines[1])
	}
	if !strings.Contains(lines[1], "2026-08-28 10:30:00") {
		t.Errorf("timestamp format wrong: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"https://maps.google.com/?q=9.9312,76.2673"`) {
		t.Errorf("location link must be quoted, its comma would split the row: %q", lines[1])
	}
}

func TestExportCSV_EmbeddedQuotesRoundTrip(t *testing.T) {
	list := sampleRegistrations()[:1]
	list[0].FullName = `He said "hi", then left`
	list[0].PresentAddress = "12/4 Temple Street, Near Bus Stand"
	svc := newTestDashboard(list)

	file, err := svc.ExportCSV(context.Background(), &ListFilters{})
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	if err != nil {
		t.Fatalf("export is not parseable CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if got := records[1][1]; got != `He said "hi", then left` {
		t.Errorf("full name did not round-trip: %q", got)
	}
	if got := records[1][5]; got != "12/4 Temple Street, Near Bus Stand" {
		t.Errorf("address did not round-trip: %q", got)
	}
}

func TestExportCSV_RespectsFilters(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	file, err := svc.ExportCSV(context.Background(), &ListFilters{Vehicle: "yes"})
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	lines := strings.Split(string(file.Content), "\n")
	if len(lines) != 2 {
		t.Fatalf("filtered export must only contain matching rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "JJSS2026100001,") {
		t.Errorf("unexpected exported row: %q", lines[1])
	}
}

func TestExportXLSX(t *testing.T) {
	svc := newTestDashboard(sampleRegistrations())

	file, err := svc.ExportXLSX(context.Background(), &ListFilters{})
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	wantName := "jjss-registrations-" + time.Now().Format("2006-01-02") + ".xlsx"
	if file.Filename != wantName {
		t.Errorf("filename = %q, want %q", file.Filename, wantName)
	}
	// XLSX files are zip archives.
	if len(file.Content) < 4 || string(file.Content[:2]) != "PK" {
		t.Error("export is not a zip container")
	}
}
