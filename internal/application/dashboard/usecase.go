package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/access"
	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/internal/domain/stockcard"
	"github.com/jhoicas/panaderia-api/pkg/money"
)

const dateLayout = "2006-01-02"

// UseCase arma el tablero, la tarjeta de estiba y el perfil del usuario autenticado.
//
// El usuario se lee siempre de la base: un cambio de permisos se ve en la
// siguiente petición, sin esperar a que venza el token.
type UseCase struct {
	userRepo      repository.UserRepository
	batchRepo     repository.BatchRepository
	loc           *time.Location
	formatter     *money.Formatter
	stockCardDays int
	now           func() time.Time

	// Un evento en tiempo real hace que todos los clientes pidan el tablero a
	// la vez; las lecturas simultáneas de lotes comparten una sola consulta.
	loads singleflight.Group
}

// NewUseCase construye el caso de uso. loc nil equivale a UTC.
func NewUseCase(
	userRepo repository.UserRepository,
	batchRepo repository.BatchRepository,
	loc *time.Location,
	formatter *money.Formatter,
	stockCardDays int,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if formatter == nil {
		formatter = money.NewFormatter("ARS")
	}
	if stockCardDays <= 0 {
		stockCardDays = 7
	}
	return &UseCase{
		userRepo:      userRepo,
		batchRepo:     batchRepo,
		loc:           loc,
		formatter:     formatter,
		stockCardDays: stockCardDays,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj; solo para tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// GetDashboard devuelve la vista del tablero para userID con el filtro c.
//
// Dos lecturas en paralelo:
//  1. userRepo.GetByID  → capacidades
//  2. batchRepo.List    → lotes con sus ventas
func (uc *UseCase) GetDashboard(ctx context.Context, userID string, c batchview.Criteria) (*dto.DashboardResponse, error) {
	type userResult struct {
		user *entity.User
		err  error
	}
	type batchesResult struct {
		batches []entity.Batch
		err     error
	}

	userCh := make(chan userResult, 1)
	batchesCh := make(chan batchesResult, 1)

	go func() {
		u, err := uc.userRepo.GetByID(ctx, userID)
		userCh <- userResult{u, err}
	}()
	go func() {
		b, err := uc.listBatches(ctx)
		batchesCh <- batchesResult{b, err}
	}()

	ur := <-userCh
	br := <-batchesCh

	if ur.err != nil {
		return nil, fmt.Errorf("dashboard: usuario: %w", ur.err)
	}
	if br.err != nil {
		return nil, fmt.Errorf("dashboard: lotes: %w", br.err)
	}

	vm := Build(ur.user, br.batches, c, uc.loc)
	return uc.toResponse(vm), nil
}

// listBatches comparte la lectura con las peticiones concurrentes. El slice
// resultante es de solo lectura: Build nunca muta su entrada.
func (uc *UseCase) listBatches(ctx context.Context) ([]entity.Batch, error) {
	ch := uc.loads.DoChan("batches", func() (interface{}, error) {
		return uc.batchRepo.List(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		batches, _ := res.Val.([]entity.Batch)
		return batches, nil
	}
}

func (uc *UseCase) toResponse(vm ViewModel) *dto.DashboardResponse {
	out := &dto.DashboardResponse{
		Capabilities: vm.Capabilities,
		Filters:      vm.Criteria,
		Groups:       make([]dto.DateGroupResponse, 0, len(vm.Groups)),
		Totals: dto.DashboardTotals{
			MoneyToCollect:      money.Round2(vm.MoneyToCollect),
			MoneyToCollectLabel: uc.formatter.Format(vm.MoneyToCollect),
		},
	}
	for _, g := range vm.Groups {
		gr := dto.DateGroupResponse{Date: g.Key, Label: g.Label, Batches: make([]dto.BatchResponse, 0, len(g.Batches))}
		for _, b := range g.Batches {
			gr.Batches = append(gr.Batches, dto.ToBatchResponseWithFigures(b.Batch, b.Figures))
		}
		out.Groups = append(out.Groups, gr)
	}
	return out
}

// GetMe devuelve el usuario autenticado con sus capacidades.
func (uc *UseCase) GetMe(ctx context.Context, userID string) (*dto.MeResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.MeResponse{User: *dto.ToUserResponse(u), Capabilities: access.Resolve(u)}, nil
}

// StockCardQuery parámetros de la tarjeta de estiba. Fechas "YYYY-MM-DD"; vacías = rango por defecto.
type StockCardQuery struct {
	From string
	To   string
	View string
}

// GetStockCard arma la tarjeta de estiba del rango pedido.
func (uc *UseCase) GetStockCard(ctx context.Context, q StockCardQuery) (*dto.StockCardResponse, error) {
	r, err := uc.parseRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	// La consulta trae [from, to+1día); Build vuelve a recortar por día calendario.
	from := r.From
	to := r.To.AddDate(0, 0, 1)
	batches, err := uc.batchRepo.ListByDateRange(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("stock card: %w", err)
	}

	rep := stockcard.Build(batches, r, q.View, uc.loc)
	out := &dto.StockCardResponse{
		From: batchview.DateKey(rep.Range.From, uc.loc),
		To:   batchview.DateKey(rep.Range.To, uc.loc),
		View: rep.View,
		Totals: dto.StockCardTotals{
			Made:         rep.Totals.Made,
			Sold:         rep.Totals.Sold,
			Remaining:    rep.Totals.Remaining,
			Revenue:      money.Round2(rep.Totals.Revenue),
			RevenueLabel: uc.formatter.Format(rep.Totals.Revenue),
		},
		Rows: make([]dto.StockCardRowDTO, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		out.Rows = append(out.Rows, dto.StockCardRowDTO{
			BatchID:      row.BatchID,
			BreadType:    row.BreadType,
			Date:         batchview.DateKey(row.Date, uc.loc),
			QuantityMade: row.QuantityMade,
			Price:        money.Round2(row.Price),
			TotalSold:    row.TotalSold,
			Remaining:    row.Remaining,
			Revenue:      money.Round2(row.Revenue),
		})
	}
	return out, nil
}

func (uc *UseCase) parseRange(fromStr, toStr string) (stockcard.Range, error) {
	def := stockcard.DefaultRange(uc.now().In(uc.loc), uc.stockCardDays)
	from, err := uc.parseDay(fromStr, def.From)
	if err != nil {
		return stockcard.Range{}, err
	}
	to, err := uc.parseDay(toStr, def.To)
	if err != nil {
		return stockcard.Range{}, err
	}
	if from.After(to) {
		return stockcard.Range{}, domain.ErrInvalidInput
	}
	return stockcard.Range{From: from, To: to}, nil
}

// parseDay devuelve el inicio del día en uc.loc.
func (uc *UseCase) parseDay(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		d := def.In(uc.loc)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, uc.loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}
