package companies

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

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

// CreateCompany registers a company. The adhesion day comes from the request
// and the time of day from the current UTC-3 wall clock.
func (s *Service) CreateCompany(ctx context.Context, req CreateCompanyRequest) (AdhesionResponse, error) {
	if err := validateCreate(s.validate, req); err != nil {
		return AdhesionResponse{}, err
	}
	s.logger.Info("creating company", slog.String("cuit", req.CUIT))

	exists, err := s.repo.ExistsByCUIT(ctx, req.CUIT)
	if err != nil {
		s.logger.Error("check cuit", slog.Any("error", err))
		return AdhesionResponse{}, err
	}
	if exists {
		s.logger.Warn("company already exists", slog.String("cuit", req.CUIT))
		return AdhesionResponse{}, httpx.NewError(httpx.ErrDuplicate, MsgDuplicateCUIT)
	}

	day, err := clock.ParseCalendarDate(req.AdhesionDate)
	if err != nil {
		return AdhesionResponse{}, httpx.Validation(createMessages["adhesionDate.calendardate"])
	}
	adhesion := clock.AtTimeOfDay(day, clock.Local(s.clock))
	s.logger.Info("adhesion date set",
		slog.String("adhesion_date", clock.Display(adhesion)),
		slog.String("offset", clock.ZoneLabel+clock.Offset(adhesion)))

	created, err := s.repo.Create(ctx, Company{
		CUIT:         req.CUIT,
		BusinessName: req.BusinessName,
		CompanyType:  req.CompanyType,
		AdhesionDate: adhesion,
	})
	if err != nil {
		s.logger.Error("create company", slog.Any("error", err))
		return AdhesionResponse{}, err
	}
	s.logger.Info("company created", slog.String("id", created.ID))
	return toAdhesionResponse(created), nil
}

// JoinedSince returns the lower bound of the joined-last-month listing:
// midnight (UTC-3) of the same calendar day one month ago.
func JoinedSince(now time.Time) time.Time {
	return clock.StartOfDay(clock.MonthsAgo(now.In(clock.Zone), 1))
}

// TransfersSince returns the lower bound of the with-transfers listing: the
// same instant one calendar month ago.
func TransfersSince(now time.Time) time.Time {
	return clock.MonthsAgo(now.In(clock.Zone), 1)
}

// CompaniesJoinedLastMonth lists companies whose adhesion date falls in the
// last calendar month, newest first.
func (s *Service) CompaniesJoinedLastMonth(ctx context.Context, page shared.PageRequest) (JoinedPage, error) {
	page = shared.NewPageRequest(page.Page, page.Limit)
	now := clock.Local(s.clock)
	since := JoinedSince(now)
	s.logger.Info("fetching companies joined last month",
		slog.Int("page", page.Page),
		slog.Int("limit", page.Limit),
		slog.String("now", clock.Display(now)),
		slog.String("since", clock.Display(since)))

	var (
		total int
		rows  []Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountJoinedSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListJoinedSince(gctx, since, page)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("fetch companies joined last month", slog.Any("error", err))
		return JoinedPage{}, err
	}

	data := make([]JoinedCompany, 0, len(rows))
	for i, c := range rows {
		s.logger.Debug("joined company",
			slog.Int("position", page.Offset()+i+1),
			slog.String("business_name", c.BusinessName),
			slog.String("cuit", c.CUIT),
			slog.String("adhesion_date", clock.Display(c.AdhesionDate)))
		data = append(data, toJoinedCompany(c))
	}
	s.logger.Info("companies joined last month", slog.Int("total", total), slog.Int("returned", len(data)))
	return shared.NewPage(data, page, total), nil
}

// CompaniesWithTransfersLastMonth lists transfers made in the last month,
// newest first. Transfers whose company does not resolve are dropped from
// the page but still counted in the total.
func (s *Service) CompaniesWithTransfersLastMonth(ctx context.Context, page shared.PageRequest) (TransfersPage, error) {
	page = shared.NewPageRequest(page.Page, page.Limit)
	since := TransfersSince(clock.Local(s.clock))
	s.logger.Info("fetching transfers from last month",
		slog.Int("page", page.Page),
		slog.Int("limit", page.Limit),
		slog.String("since", since.UTC().Format(time.RFC3339Nano)))

	var (
		total int
		rows  []TransferWithCompany
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountTransfersSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListTransfersSince(gctx, since, page)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("fetch transfers last month", slog.Any("error", err))
		return TransfersPage{}, err
	}

	data := make([]CompanyTransfer, 0, len(rows))
	for _, t := range rows {
		if t.Company == nil {
			s.logger.Warn("transfer has no associated company",
				slog.String("transfer_id", t.ID),
				slog.String("company_id", t.CompanyID))
			continue
		}
		data = append(data, toCompanyTransfer(t))
	}
	s.logger.Info("transfers last month", slog.Int("total", total), slog.Int("returned", len(data)))
	return shared.NewPage(data, page, total), nil
}
