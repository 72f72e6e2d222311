package xlsxfile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"hrassistant/internal/domain"
	"hrassistant/internal/userstore"
)

// Store reads and updates employee records in a local xlsx workbook.
// Every call re-reads the file so concurrent edits by HR staff are
// picked up; writes save the workbook in place (best-effort, not
// transactional).
type Store struct {
	mu           sync.Mutex
	path         string
	sheetName    string
	historySheet string
}

func NewStore(path, sheetName, historySheet string) *Store {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if historySheet == "" {
		historySheet = "LeaveHistory"
	}
	return &Store{path: path, sheetName: sheetName, historySheet: historySheet}
}

func (s *Store) FindUser(ctx context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wb, err := s.open()
	if err != nil {
		return domain.User{}, err
	}
	defer wb.Close()
	users, err := s.readUsers(wb)
	if err != nil {
		return domain.User{}, err
	}
	return userstore.FindByUsername(users, username)
}

func (s *Store) UpdateRemainingLeaves(ctx context.Context, username string, remaining float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wb, err := s.open()
	if err != nil {
		return err
	}
	defer wb.Close()
	rows, err := wb.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: read sheet %s: %v", domain.ErrParse, s.sheetName, err)
	}
	users, err := userstore.ParseUsers(rows)
	if err != nil {
		return err
	}
	user, err := userstore.FindByUsername(users, username)
	if err != nil {
		return err
	}
	layout, err := userstore.ParseLayout(rows[0])
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(layout.RemainingLeaves+1, user.Row)
	if err != nil {
		return err
	}
	if err := wb.SetCellValue(s.sheetName, cell, remaining); err != nil {
		return err
	}
	return wb.Save()
}

func (s *Store) AppendLeaveHistory(ctx context.Context, rec domain.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wb, err := s.open()
	if err != nil {
		return err
	}
	defer wb.Close()
	idx, err := wb.GetSheetIndex(s.historySheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := wb.NewSheet(s.historySheet); err != nil {
			return err
		}
	}
	rows, err := wb.GetRows(s.historySheet)
	if err != nil {
		return fmt.Errorf("%w: read sheet %s: %v", domain.ErrParse, s.historySheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	row := []any{
		rec.Username,
		rec.Days,
		rec.Date.Format("2006-01-02"),
		rec.Status,
	}
	if err := wb.SetSheetRow(s.historySheet, cell, &row); err != nil {
		return err
	}
	return wb.Save()
}

func (s *Store) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: workbook %s", domain.ErrNotFound, s.path)
	}
	wb, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", domain.ErrParse, s.path, err)
	}
	return wb, nil
}

func (s *Store) readUsers(wb *excelize.File) ([]domain.User, error) {
	rows, err := wb.GetRows(s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", domain.ErrParse, s.sheetName, err)
	}
	return userstore.ParseUsers(rows)
}
