package userstore

import (
	"fmt"
	"strconv"
	"strings"

	"hrassistant/internal/domain"
)

// Columns recognized in the employee sheet header row. Matching is
// case-insensitive and ignores spaces.
const (
	ColUsername        = "username"
	ColPassword        = "password"
	ColRemainingLeaves = "remaining_leaves"
	ColGrade           = "grade"
)

// Layout maps sheet columns (0-based) to user record fields.
type Layout struct {
	Username        int
	Password        int
	RemainingLeaves int
	Grade           int
}

// ParseLayout reads the header row. Username, password and
// remaining_leaves are required; grade is optional (-1 when absent).
func ParseLayout(header []string) (Layout, error) {
	l := Layout{Username: -1, Password: -1, RemainingLeaves: -1, Grade: -1}
	for i, cell := range header {
		switch normalizeHeader(cell) {
		case ColUsername:
			l.Username = i
		case ColPassword:
			l.Password = i
		case ColRemainingLeaves:
			l.RemainingLeaves = i
		case ColGrade:
			l.Grade = i
		}
	}
	if l.Username < 0 || l.Password < 0 || l.RemainingLeaves < 0 {
		return l, fmt.Errorf("%w: employee sheet header missing required columns", domain.ErrParse)
	}
	return l, nil
}

// ParseUsers converts sheet rows (header first) into user records.
// Row carries the 1-based sheet row number for update addressing.
func ParseUsers(rows [][]string) ([]domain.User, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: employee sheet is empty", domain.ErrParse)
	}
	layout, err := ParseLayout(rows[0])
	if err != nil {
		return nil, err
	}
	var users []domain.User
	for i, row := range rows[1:] {
		u, ok, err := parseUserRow(layout, row, i+2)
		if err != nil {
			return nil, err
		}
		if ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func parseUserRow(l Layout, row []string, sheetRow int) (domain.User, bool, error) {
	name := cellAt(row, l.Username)
	if name == "" {
		return domain.User{}, false, nil
	}
	password, err := strconv.Atoi(cellAt(row, l.Password))
	if err != nil {
		return domain.User{}, false, fmt.Errorf("%w: row %d: bad password value", domain.ErrParse, sheetRow)
	}
	remaining, err := strconv.ParseFloat(cellAt(row, l.RemainingLeaves), 64)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("%w: row %d: bad remaining_leaves value", domain.ErrParse, sheetRow)
	}
	u := domain.User{
		Username:        name,
		Password:        password,
		RemainingLeaves: remaining,
		Row:             sheetRow,
	}
	if l.Grade >= 0 {
		u.Grade = cellAt(row, l.Grade)
	}
	return u, true, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// FindByUsername does the case-insensitive lookup shared by the store
// implementations.
func FindByUsername(users []domain.User, username string) (domain.User, error) {
	want := strings.ToLower(username)
	for _, u := range users {
		if strings.ToLower(u.Username) == want {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
}
