package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"hrassistant/internal/domain"
	"hrassistant/internal/userstore"
)

const apiBase = "https://sheets.googleapis.com/v4/spreadsheets"

// Store reads employees from a Google Sheets xlsx export and writes
// updates through the Sheets values API. Reads are real-time: every
// lookup re-fetches the export. Writes are best-effort, not
// transactional.
type Store struct {
	exportURL     string
	spreadsheetID string
	sheetName     string
	historySheet  string
	token         string
	client        *http.Client
}

// Config configures the sheets-backed store. TokenEnv names the env
// variable holding an OAuth bearer token with write access.
type Config struct {
	ExportURL     string
	SpreadsheetID string
	SheetName     string
	HistorySheet  string
	TokenEnv      string
	Timeout       time.Duration
}

func NewStore(cfg Config) *Store {
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}
	if cfg.HistorySheet == "" {
		cfg.HistorySheet = "LeaveHistory"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		exportURL:     cfg.ExportURL,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		historySheet:  cfg.HistorySheet,
		token:         os.Getenv(cfg.TokenEnv),
		client:        &http.Client{Timeout: timeout},
	}
}

func (s *Store) FindUser(ctx context.Context, username string) (domain.User, error) {
	users, err := s.fetchUsers(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return userstore.FindByUsername(users, username)
}

func (s *Store) UpdateRemainingLeaves(ctx context.Context, username string, remaining float64) error {
	users, _, layout, err := s.fetchUsersWithLayout(ctx)
	if err != nil {
		return err
	}
	user, err := userstore.FindByUsername(users, username)
	if err != nil {
		return err
	}
	col, err := excelize.ColumnNumberToName(layout.RemainingLeaves + 1)
	if err != nil {
		return err
	}
	rangeRef := fmt.Sprintf("%s!%s%d", s.sheetName, col, user.Row)
	body := map[string]any{"values": [][]any{{remaining}}}
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		apiBase, s.spreadsheetID, url.PathEscape(rangeRef))
	return s.callAPI(ctx, http.MethodPut, endpoint, body)
}

func (s *Store) AppendLeaveHistory(ctx context.Context, rec domain.LeaveRecord) error {
	rangeRef := fmt.Sprintf("%s!A:D", s.historySheet)
	body := map[string]any{"values": [][]any{{
		rec.Username,
		rec.Days,
		rec.Date.Format("2006-01-02"),
		rec.Status,
	}}}
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW",
		apiBase, s.spreadsheetID, url.PathEscape(rangeRef))
	return s.callAPI(ctx, http.MethodPost, endpoint, body)
}

func (s *Store) fetchUsers(ctx context.Context) ([]domain.User, error) {
	users, _, _, err := s.fetchUsersWithLayout(ctx)
	return users, err
}

func (s *Store) fetchUsersWithLayout(ctx context.Context) ([]domain.User, [][]string, userstore.Layout, error) {
	var layout userstore.Layout
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.exportURL, nil)
	if err != nil {
		return nil, nil, layout, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, layout, fmt.Errorf("%w: fetch employee sheet: %v", domain.ErrConnection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, layout, fmt.Errorf("%w: employee sheet export returned %s", domain.ErrConnection, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, layout, fmt.Errorf("%w: read employee sheet: %v", domain.ErrConnection, err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, layout, fmt.Errorf("%w: parse employee sheet: %v", domain.ErrParse, err)
	}
	defer wb.Close()
	rows, err := wb.GetRows(s.sheetName)
	if err != nil {
		return nil, nil, layout, fmt.Errorf("%w: read sheet %s: %v", domain.ErrParse, s.sheetName, err)
	}
	users, err := userstore.ParseUsers(rows)
	if err != nil {
		return nil, nil, layout, err
	}
	layout, err = userstore.ParseLayout(rows[0])
	if err != nil {
		return nil, nil, layout, err
	}
	return users, rows, layout, nil
}

func (s *Store) callAPI(ctx context.Context, method, endpoint string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sheets API %s: %v", domain.ErrConnection, endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheets API %s %s failed: %s", method, endpoint, resp.Status)
	}
	return nil
}
