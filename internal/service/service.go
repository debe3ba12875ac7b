package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"ryusushi/pos/internal/aggregate"
	"ryusushi/pos/internal/cache"
	"ryusushi/pos/internal/calc"
	"ryusushi/pos/internal/catalog"
	"ryusushi/pos/internal/domain"
	"ryusushi/pos/internal/order"
	"ryusushi/pos/internal/render"
	"ryusushi/pos/internal/store"
	"ryusushi/pos/internal/xid"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

// ErrEmptyOrder rejects checkouts and ticket renders over zero lines.
var ErrEmptyOrder = errors.New("order is empty")

type Service struct {
	repo          store.Repository
	acc           *order.Accumulator
	calculator    *calc.Calculator
	renderer      *render.Renderer
	renderCache   cache.RenderCache
	cacheTTL      time.Duration
	businessName  string
	businessPhone string
}

func New(repo store.Repository, renderer *render.Renderer, renderCache cache.RenderCache, businessName string, businessPhone string, cacheTTL time.Duration) *Service {
	if businessName == "" {
		businessName = "RYU SUSHI"
	}
	if renderCache == nil {
		renderCache = cache.NoopRenderCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	return &Service{
		repo:          repo,
		acc:           order.New(),
		calculator:    calc.New(),
		renderer:      renderer,
		renderCache:   renderCache,
		cacheTTL:      cacheTTL,
		businessName:  businessName,
		businessPhone: businessPhone,
	}
}

// Accumulator exposes the open order. Test hook.
func (s *Service) Accumulator() *order.Accumulator { return s.acc }

func (s *Service) logAction(ctx context.Context, action string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Username: "system", Role: "system"}
	}
	log.Printf("[action] %s by=%s role=%s entity=%s %s", action, actor.Username, actor.Role, entityID, detail)
}

func requireAdmin(ctx context.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return fmt.Errorf("admin role required")
	}
	return nil
}

// --- catalog ---

func (s *Service) Categories() []string {
	return append(catalog.Categories(), domain.TypePostre)
}

func (s *Service) CatalogItems(ctx context.Context, category string) ([]catalog.Item, error) {
	if category == domain.TypePostre {
		desserts, err := s.repo.ListDesserts(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(desserts))
		for _, d := range desserts {
			items = append(items, catalog.Item{Name: d.Name, Price: d.Price, Type: domain.TypePostre})
		}
		return items, nil
	}
	items, ok := catalog.Items(category)
	if !ok {
		return nil, store.ErrNotFound
	}
	return items, nil
}

func (s *Service) ListDesserts(ctx context.Context) ([]domain.Dessert, error) {
	return s.repo.ListDesserts(ctx)
}

func (s *Service) CreateDessert(ctx context.Context, req domain.DessertCreateRequest) (domain.Dessert, error) {
	if err := requireAdmin(ctx); err != nil {
		return domain.Dessert{}, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price <= 0 {
		return domain.Dessert{}, store.ErrInvalidInput
	}

	created, err := s.repo.CreateDessert(ctx, domain.Dessert{
		ID:       xid.New("dessert"),
		Name:     req.Name,
		Price:    req.Price,
		ImageURI: strings.TrimSpace(req.ImageURI),
	})
	if err != nil {
		return domain.Dessert{}, err
	}
	s.logAction(ctx, "dessert_create", created.ID, fmt.Sprintf("name=%s,price=%.2f", created.Name, created.Price))
	return *created, nil
}

func (s *Service) UpdateDessert(ctx context.Context, dessertID string, req domain.DessertUpdateRequest) (domain.Dessert, error) {
	if err := requireAdmin(ctx); err != nil {
		return domain.Dessert{}, err
	}
	existing, err := s.repo.GetDessert(ctx, dessertID)
	if err != nil {
		return domain.Dessert{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Dessert{}, store.ErrInvalidInput
		}
		existing.Name = name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return domain.Dessert{}, store.ErrInvalidInput
		}
		existing.Price = *req.Price
	}
	if req.ImageURI != nil {
		existing.ImageURI = strings.TrimSpace(*req.ImageURI)
	}

	saved, err := s.repo.UpdateDessert(ctx, *existing)
	if err != nil {
		return domain.Dessert{}, err
	}
	s.logAction(ctx, "dessert_update", saved.ID, fmt.Sprintf("name=%s,price=%.2f", saved.Name, saved.Price))
	return *saved, nil
}

func (s *Service) DeleteDessert(ctx context.Context, dessertID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.repo.DeleteDessert(ctx, dessertID); err != nil {
		return err
	}
	s.logAction(ctx, "dessert_delete", dessertID, "")
	return nil
}

// --- open order ---

func (s *Service) OrderState() domain.OrderStateResponse {
	return domain.OrderStateResponse{
		Items:       s.acc.Items(),
		Count:       s.acc.Count(),
		Total:       s.acc.Total(),
		PromoActive: s.acc.PromoActive(),
	}
}

func (s *Service) AppendOrderItem(ctx context.Context, req domain.OrderItemRequest) (domain.LineItem, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.Name = strings.TrimSpace(req.Name)
	if req.Type == "" || req.Name == "" {
		return domain.LineItem{}, store.ErrInvalidInput
	}

	var line domain.LineItem
	if req.Type == domain.TypePostre {
		desserts, err := s.repo.ListDesserts(ctx)
		if err != nil {
			return domain.LineItem{}, err
		}
		found := false
		for _, d := range desserts {
			if d.Name == req.Name {
				line = domain.LineItem{Type: domain.TypePostre, Name: d.Name, Price: d.Price}
				found = true
				break
			}
		}
		if !found {
			return domain.LineItem{}, store.ErrNotFound
		}
	} else {
		var err error
		line, err = catalog.Resolve(req.Type, req.Name, req.Option)
		if err != nil {
			return domain.LineItem{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
		}
	}

	return s.acc.Append(line), nil
}

func (s *Service) SetPromo(ctx context.Context, active bool) {
	s.acc.SetPromo(active)
	s.logAction(ctx, "promo_toggle", "3x2", fmt.Sprintf("active=%t", active))
}

func (s *Service) CancelOrder(ctx context.Context) {
	s.acc.Clear()
	s.logAction(ctx, "order_cancel", "", "")
}

// Checkout assigns the open order to a client and persists its lines.
// Three modes: reuse an existing roster client, register a new named
// one, or finalize under a throwaway numbered client carrying a
// courtesy discount percentage. The discount is informational only and
// never changes line prices.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	if s.acc.Count() == 0 {
		return domain.CheckoutResponse{}, ErrEmptyOrder
	}

	var client domain.Client
	switch req.Mode {
	case domain.CheckoutModeExisting:
		existing, err := s.repo.GetClient(ctx, strings.TrimSpace(req.ClientID))
		if err != nil {
			return domain.CheckoutResponse{}, err
		}
		client = *existing
	case domain.CheckoutModeNew:
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return domain.CheckoutResponse{}, store.ErrInvalidInput
		}
		var discount float64
		if req.Discount != nil {
			if *req.Discount < 0 || *req.Discount > 100 {
				return domain.CheckoutResponse{}, store.ErrInvalidInput
			}
			discount = *req.Discount
		}
		created, err := s.repo.CreateClient(ctx, domain.Client{
			ID:        xid.New("client"),
			Name:      name,
			Discount:  discount,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return domain.CheckoutResponse{}, err
		}
		client = *created
	case domain.CheckoutModeDiscount:
		if req.Discount == nil || *req.Discount < 0 || *req.Discount > 100 {
			return domain.CheckoutResponse{}, store.ErrInvalidInput
		}
		count, err := s.repo.CountClients(ctx)
		if err != nil {
			return domain.CheckoutResponse{}, err
		}
		// numbered stand-in, never added to the roster
		client = domain.Client{
			ID:       xid.New("client"),
			Name:     "Cliente " + strconv.Itoa(count+1),
			Discount: *req.Discount,
		}
	default:
		return domain.CheckoutResponse{}, store.ErrInvalidInput
	}

	items := s.acc.Drain(client)
	if len(items) == 0 {
		return domain.CheckoutResponse{}, ErrEmptyOrder
	}
	if err := s.repo.AppendHistory(ctx, items); err != nil {
		return domain.CheckoutResponse{}, err
	}

	total := aggregate.GrandTotal(items)
	s.logAction(ctx, "checkout", client.ID, fmt.Sprintf("mode=%s,items=%d,total=%.2f", req.Mode, len(items), total))
	return domain.CheckoutResponse{
		Client:    client,
		ItemCount: len(items),
		Total:     total,
		CreatedAt: items[0].Time.UTC().Format(time.RFC3339),
	}, nil
}

// --- history ---

type HistoryView struct {
	Groups     []aggregate.OrderGroup `json:"groups"`
	GrandTotal float64                `json:"grand_total"`
	PromoCount int                    `json:"promo_count"`
}

func (s *Service) History(ctx context.Context) (HistoryView, error) {
	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return HistoryView{}, err
	}
	return HistoryView{
		Groups:     aggregate.GroupByClient(items),
		GrandTotal: aggregate.GrandTotal(items),
		PromoCount: aggregate.PromoCount(items),
	}, nil
}

func (s *Service) ProductTotals(ctx context.Context) (map[string]aggregate.ProductTotal, error) {
	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.ProductTotals(items), nil
}

func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.ListClients(ctx)
}

// ResetClients wipes the roster without touching history. History lines
// keep the client name they were stamped with.
func (s *Service) ResetClients(ctx context.Context, confirm bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if !confirm {
		return store.ErrInvalidInput
	}
	if err := s.repo.ResetClients(ctx); err != nil {
		return err
	}
	s.logAction(ctx, "clients_reset", "", "")
	return nil
}

// DeleteOrder removes one client's lines from history; everything else
// stays untouched.
func (s *Service) DeleteOrder(ctx context.Context, clientID string, confirm bool) (int, error) {
	if err := requireAdmin(ctx); err != nil {
		return 0, err
	}
	if !confirm {
		return 0, store.ErrInvalidInput
	}
	removed, err := s.repo.DeleteOrder(ctx, strings.TrimSpace(clientID))
	if err != nil {
		return 0, err
	}
	s.logAction(ctx, "order_delete", clientID, fmt.Sprintf("removed=%d", removed))
	return removed, nil
}

// CloseDay archives today's history under its date and starts fresh:
// history and the client roster reset, expenses and the register
// record survive the close.
func (s *Service) CloseDay(ctx context.Context, confirm bool) (string, int, error) {
	if err := requireAdmin(ctx); err != nil {
		return "", 0, err
	}
	if !confirm {
		return "", 0, store.ErrInvalidInput
	}

	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return "", 0, err
	}
	date := time.Now().UTC().Format("2006-01-02")
	if len(items) > 0 {
		if err := s.repo.SaveDay(ctx, domain.DaySnapshot{
			Date:    date,
			Items:   items,
			SavedAt: time.Now().UTC(),
		}); err != nil {
			return "", 0, err
		}
	}
	if err := s.repo.ResetHistory(ctx); err != nil {
		return "", 0, err
	}
	if err := s.repo.ResetClients(ctx); err != nil {
		return "", 0, err
	}

	s.logAction(ctx, "day_close", date, fmt.Sprintf("archived=%d", len(items)))
	return date, len(items), nil
}

func (s *Service) ListDays(ctx context.Context) ([]domain.DaySnapshot, error) {
	return s.repo.ListDays(ctx)
}

func (s *Service) GetDay(ctx context.Context, date string) (domain.DaySnapshot, error) {
	day, err := s.repo.GetDay(ctx, strings.TrimSpace(date))
	if err != nil {
		return domain.DaySnapshot{}, err
	}
	return *day, nil
}

// --- expenses ---

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseCreateRequest) (domain.Expense, error) {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" || req.Amount <= 0 {
		return domain.Expense{}, store.ErrInvalidInput
	}
	created, err := s.repo.AddExpense(ctx, domain.Expense{
		ID:          xid.New("exp"),
		Description: req.Description,
		Amount:      req.Amount,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return domain.Expense{}, err
	}
	s.logAction(ctx, "expense_add", created.ID, fmt.Sprintf("amount=%.2f", created.Amount))
	return *created, nil
}

type ExpensesView struct {
	Expenses []domain.Expense `json:"expenses"`
	Total    float64          `json:"total"`
}

func (s *Service) Expenses(ctx context.Context) (ExpensesView, error) {
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return ExpensesView{}, err
	}
	view := ExpensesView{Expenses: expenses}
	for _, e := range expenses {
		view.Total += e.Amount
	}
	return view, nil
}

func (s *Service) ResetExpenses(ctx context.Context, confirm bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if !confirm {
		return store.ErrInvalidInput
	}
	if err := s.repo.ResetExpenses(ctx); err != nil {
		return err
	}
	s.logAction(ctx, "expenses_reset", "", "")
	return nil
}

// --- register ---

func (s *Service) SaveRegister(ctx context.Context, req domain.RegisterSaveRequest) (domain.RegisterInfo, error) {
	req.WorkerName = strings.TrimSpace(req.WorkerName)
	req.Date = strings.TrimSpace(req.Date)
	if req.WorkerName == "" || req.Date == "" || req.CashInBox < 0 {
		return domain.RegisterInfo{}, store.ErrInvalidInput
	}
	info := domain.RegisterInfo{
		CashInBox:  req.CashInBox,
		Date:       req.Date,
		WorkerName: req.WorkerName,
		Address:    strings.TrimSpace(req.Address),
		Hours:      strings.TrimSpace(req.Hours),
		SavedAt:    time.Now().UTC(),
	}
	if err := s.repo.SaveRegister(ctx, info); err != nil {
		return domain.RegisterInfo{}, err
	}
	s.logAction(ctx, "register_save", req.Date, fmt.Sprintf("cash=%.2f,worker=%s", req.CashInBox, req.WorkerName))
	return info, nil
}

func (s *Service) GetRegister(ctx context.Context) (domain.RegisterInfo, error) {
	info, err := s.repo.GetRegister(ctx)
	if err != nil {
		return domain.RegisterInfo{}, err
	}
	return *info, nil
}

// --- inventory ---

func (s *Service) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListInventory(ctx)
}

func validInventoryStatus(status string) bool {
	switch status {
	case domain.InventoryStatusMucho, domain.InventoryStatusEstable,
		domain.InventoryStatusPoco, domain.InventoryStatusAgotado:
		return true
	}
	return false
}

// statusFromExact and statusFromPackages mirror how the kitchen reads
// the shelf: piece counts go straight from zero to "poco" to "mucho",
// package counts treat a single unopened package as "estable".
func statusFromExact(qty int) string {
	switch {
	case qty == 0:
		return domain.InventoryStatusAgotado
	case qty <= 5:
		return domain.InventoryStatusPoco
	default:
		return domain.InventoryStatusMucho
	}
}

func statusFromPackages(packages float64) string {
	switch {
	case packages <= 0:
		return domain.InventoryStatusAgotado
	case packages < 1:
		return domain.InventoryStatusPoco
	case packages == 1:
		return domain.InventoryStatusEstable
	default:
		return domain.InventoryStatusMucho
	}
}

func (s *Service) CreateInventoryItem(ctx context.Context, req domain.InventoryCreateRequest) (domain.InventoryItem, error) {
	if err := requireAdmin(ctx); err != nil {
		return domain.InventoryItem{}, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.InventoryItem{}, store.ErrInvalidInput
	}

	item := domain.InventoryItem{
		ID:            xid.New("inv"),
		Name:          req.Name,
		Status:        req.Status,
		Packages:      req.Packages,
		ExactQuantity: req.ExactQuantity,
	}
	switch {
	case item.ExactQuantity != nil:
		item.Status = statusFromExact(*item.ExactQuantity)
	case item.Packages != nil:
		item.Status = statusFromPackages(*item.Packages)
	case !validInventoryStatus(item.Status):
		return domain.InventoryItem{}, store.ErrInvalidInput
	}

	created, err := s.repo.CreateInventoryItem(ctx, item)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	s.logAction(ctx, "inventory_create", created.ID, fmt.Sprintf("name=%s,status=%s", created.Name, created.Status))
	return *created, nil
}

func (s *Service) UpdateInventoryItem(ctx context.Context, itemID string, req domain.InventoryUpdateRequest) (domain.InventoryItem, error) {
	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	var existing *domain.InventoryItem
	for i := range items {
		if items[i].ID == itemID {
			existing = &items[i]
			break
		}
	}
	if existing == nil {
		return domain.InventoryItem{}, store.ErrNotFound
	}

	switch {
	case req.ExactQuantity != nil:
		if *req.ExactQuantity < 0 {
			return domain.InventoryItem{}, store.ErrInvalidInput
		}
		existing.ExactQuantity = req.ExactQuantity
		existing.Status = statusFromExact(*req.ExactQuantity)
	case req.Packages != nil:
		if *req.Packages < 0 {
			return domain.InventoryItem{}, store.ErrInvalidInput
		}
		existing.Packages = req.Packages
		existing.Status = statusFromPackages(*req.Packages)
	case req.Status != nil:
		if !validInventoryStatus(*req.Status) {
			return domain.InventoryItem{}, store.ErrInvalidInput
		}
		existing.Status = *req.Status
	default:
		return domain.InventoryItem{}, store.ErrInvalidInput
	}

	saved, err := s.repo.UpdateInventoryItem(ctx, *existing)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	s.logAction(ctx, "inventory_update", saved.ID, fmt.Sprintf("status=%s", saved.Status))
	return *saved, nil
}

// --- calculator ---

func (s *Service) CalculatorPress(key string) domain.CalculatorState {
	s.calculator.Press(key)
	return s.calculatorState()
}

func (s *Service) CalculatorState() domain.CalculatorState {
	return s.calculatorState()
}

func (s *Service) calculatorState() domain.CalculatorState {
	return domain.CalculatorState{
		Buffer: s.calculator.Buffer(),
		Trail:  s.calculator.Trail(),
	}
}

// CalculatorAutoFill loads cash-in-box plus sales minus expenses into
// the calculator. A missing register record counts as zero cash.
func (s *Service) CalculatorAutoFill(ctx context.Context) (domain.CalculatorState, error) {
	var cash float64
	register, err := s.repo.GetRegister(ctx)
	if err == nil {
		cash = register.CashInBox
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.CalculatorState{}, err
	}

	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return domain.CalculatorState{}, err
	}
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return domain.CalculatorState{}, err
	}
	var totalExpenses float64
	for _, e := range expenses {
		totalExpenses += e.Amount
	}

	s.calculator.AutoFill(cash, aggregate.GrandTotal(items), totalExpenses)
	return s.calculatorState(), nil
}

func (s *Service) CalculatorCopy() (string, bool) {
	return s.calculator.Copy()
}

// --- reports and tickets ---

func fingerprint(parts ...any) string {
	payload, _ := json.Marshal(parts)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// SalesReportHTML renders the daily report, reusing a cached render
// while the underlying data is unchanged.
func (s *Service) SalesReportHTML(ctx context.Context) (string, error) {
	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return "", err
	}
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return "", err
	}
	register, err := s.repo.GetRegister(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	key := "report:" + fingerprint(items, expenses, register)
	if html, ok, err := s.renderCache.Get(ctx, key); err == nil && ok {
		return html, nil
	} else if err != nil {
		log.Printf("[service] WARN: report cache get failed: %v", err)
	}

	data := render.BuildReportData(s.businessName, s.businessPhone, items, expenses, register, time.Now())
	html, err := render.ReportHTML(data)
	if err != nil {
		return "", err
	}
	if err := s.renderCache.Set(ctx, key, html, s.cacheTTL); err != nil {
		log.Printf("[service] WARN: report cache set failed: %v", err)
	}
	return html, nil
}

func (s *Service) SalesReportPDF(ctx context.Context) ([]byte, error) {
	html, err := s.SalesReportHTML(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.PDF(ctx, html)
}

func (s *Service) SalesReportJPEG(ctx context.Context) ([]byte, error) {
	html, err := s.SalesReportHTML(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.JPEG(ctx, html, 800, 90)
}

// DayReportHTML replays the report for an archived day.
func (s *Service) DayReportHTML(ctx context.Context, date string) (string, error) {
	day, err := s.repo.GetDay(ctx, strings.TrimSpace(date))
	if err != nil {
		return "", err
	}
	data := render.BuildReportData(s.businessName, s.businessPhone, day.Items, nil, nil, day.SavedAt)
	data.Date = day.Date
	return render.ReportHTML(data)
}

func (s *Service) DayReportPDF(ctx context.Context, date string) ([]byte, error) {
	html, err := s.DayReportHTML(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.renderer.PDF(ctx, html)
}

func (s *Service) ticketData(ctx context.Context, clientID string) (render.TicketData, error) {
	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return render.TicketData{}, err
	}
	for _, group := range aggregate.GroupByClient(items) {
		if group.ClientID == clientID {
			return render.BuildTicketData(s.businessName, s.businessPhone, group, time.Now()), nil
		}
	}
	return render.TicketData{}, store.ErrNotFound
}

func (s *Service) TicketHTML(ctx context.Context, clientID string) (string, error) {
	data, err := s.ticketData(ctx, clientID)
	if err != nil {
		return "", err
	}
	return render.TicketHTML(data)
}

func (s *Service) TicketPDF(ctx context.Context, clientID string) ([]byte, error) {
	html, err := s.TicketHTML(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.renderer.PDF(ctx, html)
}

// TicketEscpos builds the raw thermal printer job for one client's
// finalized order.
func (s *Service) TicketEscpos(ctx context.Context, clientID string) (domain.TicketRenderResponse, error) {
	data, err := s.ticketData(ctx, clientID)
	if err != nil {
		return domain.TicketRenderResponse{}, err
	}
	escpos, preview := render.EscposTicket(data)
	return domain.TicketRenderResponse{
		ClientID:     clientID,
		EscposBase64: escpos,
		PreviewText:  preview,
		FileName:     fmt.Sprintf("ticket-%s.bin", clientID),
	}, nil
}
