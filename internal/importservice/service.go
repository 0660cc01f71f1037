// Package importservice manages bulk ingestion of accounts from batch sources.
package importservice

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vporoshin/bank-ledger/internal/domain"
	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
)

// Repo provides data access layer interface needed by the import service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package importservice
type Repo interface {
	Create(ctx context.Context, id uuid.UUID, name string, balance moneypkg.Money) (domain.Account, error)
}

// Service facilitates import service layer logic.
type Service struct {
	repo Repo
}

// New returns import service struct to manage bulk account ingestion.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// ImportRows creates an account for every parseable row, skipping
// duplicates by id.
//
// The batch is best effort: a bad row is recorded in the result and
// the remaining rows still run. Rows already applied stay applied if
// the context is cancelled partway through; the counts report how far
// the batch got.
func (s *Service) ImportRows(ctx context.Context, rows []domain.ImportRow) domain.ImportResult {
	var res domain.ImportResult

	for i, row := range rows {
		if ctx.Err() != nil {
			break
		}

		s.importRow(ctx, i+1, row, &res)
	}

	return res
}

// ImportCSV reads (id, name, balance) records from r and imports them.
// The returned error covers only a non-recoverable read fault; row
// level problems land in the result.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (domain.ImportResult, error) {
	var res domain.ImportResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for rowNum := 1; ; rowNum++ {
		if ctx.Err() != nil {
			return res, nil
		}

		record, err := reader.Read()
		if err == io.EOF {
			return res, nil
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Errors = append(res.Errors, domain.RowError{
					Row:    rowNum,
					Reason: fmt.Sprintf("%v: %v", domain.ErrInvalidRow, parseErr.Err),
				})

				continue
			}

			return res, err
		}

		if len(record) < 3 {
			res.Errors = append(res.Errors, domain.RowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("%v: want 3 fields, got %d", domain.ErrInvalidRow, len(record)),
			})

			continue
		}

		row := domain.ImportRow{
			ID:      record[0],
			Name:    record[1],
			Balance: record[2],
		}

		s.importRow(ctx, rowNum, row, &res)
	}
}

func (s *Service) importRow(ctx context.Context, rowNum int, row domain.ImportRow, res *domain.ImportResult) {
	l := zerolog.Ctx(ctx)

	rawID := strings.TrimSpace(row.ID)

	// The column label row carries "ID" where an identifier belongs.
	if strings.EqualFold(rawID, "ID") {
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		res.Errors = append(res.Errors, domain.RowError{
			Row:    rowNum,
			Reason: fmt.Sprintf("%v: bad account id %q", domain.ErrInvalidRow, rawID),
		})

		return
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		res.Errors = append(res.Errors, domain.RowError{
			Row:    rowNum,
			Reason: fmt.Sprintf("%v: empty account name", domain.ErrInvalidRow),
		})

		return
	}

	balance, err := moneypkg.FromString(strings.TrimSpace(row.Balance))
	if err != nil {
		res.Errors = append(res.Errors, domain.RowError{
			Row:    rowNum,
			Reason: fmt.Sprintf("%v: bad balance %q: %v", domain.ErrInvalidRow, row.Balance, err),
		})

		return
	}

	if balance.IsNegative() {
		res.Errors = append(res.Errors, domain.RowError{
			Row:    rowNum,
			Reason: fmt.Sprintf("%v: negative balance %q", domain.ErrInvalidRow, row.Balance),
		})

		return
	}

	if _, err := s.repo.Create(ctx, id, name, balance); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			res.Skipped++
			return
		}

		l.Error().Err(err).Int("row", rowNum).Msg("import row")

		res.Errors = append(res.Errors, domain.RowError{
			Row:    rowNum,
			Reason: err.Error(),
		})

		return
	}

	res.Imported++
}
