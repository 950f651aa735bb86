package transfers

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/shared"
)

type Service struct {
	repo     Repository
	clock    clock.Clock
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(repo Repository, c clock.Clock, logger *slog.Logger) *Service {
	if c == nil {
		c = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, clock: c, validate: shared.NewValidator(), logger: logger}
}

// CreateTransfer stores a transfer without checking that the company exists.
func (s *Service) CreateTransfer(ctx context.Context, req CreateTransferRequest) (Response, error) {
	if err := s.validate.Struct(req); err != nil {
		if msgs := shared.ValidationMessages(err, nil); len(msgs) > 0 {
			return Response{}, httpx.Validation(msgs...)
		}
		return Response{}, err
	}
	s.logger.Info("creating transfer", slog.String("company_id", req.CompanyID))

	when, err := clock.ParseISO(req.TransferDate)
	if err != nil {
		return Response{}, httpx.Validation("transferDate must be a valid ISO 8601 date string")
	}

	created, err := s.repo.Create(ctx, Transfer{
		CompanyID:     req.CompanyID,
		Amount:        *req.Amount,
		DebitAccount:  req.DebitAccount,
		CreditAccount: req.CreditAccount,
		TransferDate:  when,
	})
	if err != nil {
		s.logger.Error("create transfer", slog.Any("error", err))
		return Response{}, err
	}
	s.logger.Info("transfer created", slog.String("id", created.ID))
	return toResponse(created), nil
}

// LastMonthSince returns the lower bound of the last-month listing. Month
// subtraction lets out-of-range days roll forward (March 31 gives March 3).
func LastMonthSince(now time.Time) time.Time {
	return clock.MonthsAgoOverflow(now.In(clock.Zone), 1)
}

// TransfersLastMonth lists every transfer of the last month, newest first.
func (s *Service) TransfersLastMonth(ctx context.Context) ([]Response, error) {
	since := LastMonthSince(s.clock.Now())
	s.logger.Info("fetching transfers from last month", slog.String("since", since.UTC().Format(time.RFC3339Nano)))

	rows, err := s.repo.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("fetch transfers last month", slog.Any("error", err))
		return nil, err
	}

	out := make([]Response, 0, len(rows))
	for _, t := range rows {
		out = append(out, toResponse(t))
	}
	s.logger.Info("transfers found", slog.Int("count", len(out)))
	return out, nil
}
