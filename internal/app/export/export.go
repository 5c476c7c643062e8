// Package export generates downloadable artifacts from the currently
// filtered dataset of a view. Exports are produced entirely in-process;
// the backend is never asked to render them.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/ecemk/classboard/internal/app/models"
)

// quote naively wraps a free-text value in double quotes, dropping any
// embedded quotes. Only free-text fields get this treatment; everything
// else is emitted bare.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}

// RoomsCSVHeader is the fixed header row of a rooms export.
const RoomsCSVHeader = "Room Number,Name,Type,Capacity,Facilities,Block,Available"

// RoomsCSV renders the given rooms as CSV: the fixed header plus one
// 7-field line per room.
func RoomsCSV(rooms []models.Room) string {
	var b strings.Builder
	b.WriteString(RoomsCSVHeader)
	b.WriteByte('\n')
	for _, r := range rooms {
		name := ""
		if r.Name != nil {
			name = *r.Name
		}
		capacity := ""
		if r.Capacity != nil {
			capacity = strconv.Itoa(*r.Capacity)
		}
		block := ""
		if r.Block != nil {
			block = r.Block.Name
		} else if r.BlockID > 0 {
			block = strconv.FormatInt(r.BlockID, 10)
		}
		fields := []string{
			r.Number,
			quote(name),
			string(r.Type),
			capacity,
			quote(strings.Join(r.Facilities, "; ")),
			block,
			strconv.FormatBool(r.Available),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// UsersCSVHeader is the fixed header row of a users export.
const UsersCSVHeader = "ID Number,Username,Email,Full Name,Role,Department,Status"

// UsersCSV renders the given users as CSV.
func UsersCSV(users []models.User) string {
	var b strings.Builder
	b.WriteString(UsersCSVHeader)
	b.WriteByte('\n')
	for _, u := range users {
		department := ""
		if u.Department != nil {
			department = u.Department.Name
		} else if u.DepartmentID != nil {
			department = strconv.FormatInt(*u.DepartmentID, 10)
		}
		fields := []string{
			u.IDNumber,
			u.Username,
			u.Email,
			quote(u.FullName),
			string(u.Role),
			quote(department),
			string(u.Status),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// FeedbackCSVHeader is the fixed header row of a feedback export.
const FeedbackCSVHeader = "ID,Author,Role,Message,Status,Created At,ID Number"

// FeedbackCSV renders the given feedback entries as CSV.
func FeedbackCSV(entries []models.Feedback) string {
	var b strings.Builder
	b.WriteString(FeedbackCSVHeader)
	b.WriteByte('\n')
	for _, f := range entries {
		fields := []string{
			strconv.FormatInt(f.ID, 10),
			quote(f.Author),
			string(f.RoleType),
			quote(strings.ReplaceAll(f.Message, "\n", " ")),
			string(f.Status),
			f.CreatedAt.Format(time.RFC3339),
			f.IDNumber,
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders any filtered dataset as an indented JSON document.
func JSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
