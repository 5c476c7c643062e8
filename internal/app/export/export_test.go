package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ecemk/classboard/internal/app/models"
)

func TestRoomsCSVShape(t *testing.T) {
	name := "Physics Lab"
	capacity := 30
	rooms := []models.Room{
		{Number: "A-101", Name: &name, Type: models.RoomLab, Capacity: &capacity,
			Facilities: []string{"projector", "ac"}, Available: true,
			Block: &models.Block{ID: 1, Name: "Science Block"}},
		{Number: "B-201", Type: models.RoomClassroom, BlockID: 2},
		{Number: "C-301", Type: models.RoomOffice, Available: true, BlockID: 3},
	}

	got := RoomsCSV(rooms)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("export has %d lines, want header + 3 data lines", len(lines))
	}
	if lines[0] != RoomsCSVHeader {
		t.Errorf("header = %q, want %q", lines[0], RoomsCSVHeader)
	}
	for i, line := range lines {
		if fields := strings.Split(line, ","); len(fields) != 7 {
			t.Errorf("line %d has %d comma-separated fields, want 7: %q", i, len(fields), line)
		}
	}
	if !strings.Contains(lines[1], `"Physics Lab"`) {
		t.Errorf("free-text name field is not quoted: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"projector; ac"`) {
		t.Errorf("facilities are not joined and quoted: %q", lines[1])
	}
}

func TestFeedbackCSVShape(t *testing.T) {
	entries := []models.Feedback{
		{ID: 1, Author: "Ada L.", RoleType: models.FeedbackFromStudent,
			Message: "Projector in A-101\nis broken", Status: models.FeedbackPending,
			CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), IDNumber: "2021/041"},
	}

	got := FeedbackCSV(entries)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want header + 1 data line", len(lines))
	}
	if fields := strings.Split(lines[1], ","); len(fields) != 7 {
		t.Errorf("data line has %d fields, want 7: %q", len(fields), lines[1])
	}
	if strings.Contains(lines[1], "\n") {
		t.Errorf("embedded newline leaked into the data line")
	}
	if !strings.Contains(lines[1], `"Projector in A-101 is broken"`) {
		t.Errorf("message is not quoted with newline flattened: %q", lines[1])
	}
}

func TestUsersCSVShape(t *testing.T) {
	deptID := int64(4)
	users := []models.User{
		{IDNumber: "STF-01", Username: "ada", Email: "ada@example.edu",
			FullName: "Ada Lovelace", Role: models.RoleInstructor,
			DepartmentID: &deptID, Status: models.UserActive},
	}

	got := UsersCSV(users)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want 2", len(lines))
	}
	if fields := strings.Split(lines[1], ","); len(fields) != 7 {
		t.Errorf("data line has %d fields, want 7: %q", len(fields), lines[1])
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	rooms := []models.Room{{Number: "A-101", Type: models.RoomLab, BlockID: 1}}

	raw, err := JSON(rooms)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var back []models.Room
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(back) != 1 || back[0].Number != "A-101" {
		t.Errorf("round-tripped export = %+v", back)
	}
}
