package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ryusushi/pos/internal/domain"
	"ryusushi/pos/internal/store"
	"ryusushi/pos/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	history         []domain.LineItem
	clientsByID     map[string]domain.Client
	clientOrder     []string
	expenses        []domain.Expense
	register        *domain.RegisterInfo
	daysByDate      map[string]domain.DaySnapshot
	inventoryByID   map[string]domain.InventoryItem
	inventoryOrder  []string
	dessertsByID    map[string]domain.Dessert
	dessertOrder    []string
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials are read from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD
// environment variables. If unset, hardcoded dev defaults are used with a
// warning printed to stdout. These credentials are never used in production
// (the backend uses PostgreSQL when DATABASE_URL is set).
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"cashier", cashierPwd, "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

// seedInventory is the consumables checklist the kitchen tracks. Items
// counted by the piece carry ExactQuantity, the rest are counted in
// packages.
func seedInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: xid.New("inv"), Name: "Tenedores", Status: domain.InventoryStatusEstable, Packages: floatPtr(1)},
		{ID: xid.New("inv"), Name: "Vasitos", Status: domain.InventoryStatusPoco, Packages: floatPtr(0.5)},
		{ID: xid.New("inv"), Name: "Charolas planas", Status: domain.InventoryStatusAgotado, ExactQuantity: intPtr(0)},
		{ID: xid.New("inv"), Name: "Charolas de 3 divisiones", Status: domain.InventoryStatusMucho, ExactQuantity: intPtr(10)},
		{ID: xid.New("inv"), Name: "Guantes", Status: domain.InventoryStatusEstable, Packages: floatPtr(1)},
		{ID: xid.New("inv"), Name: "Bolsas maki", Status: domain.InventoryStatusPoco, Packages: floatPtr(0.3)},
		{ID: xid.New("inv"), Name: "Cheetos Flamin Hot", Status: domain.InventoryStatusMucho, ExactQuantity: intPtr(15)},
		{ID: xid.New("inv"), Name: "Bolsas camiseta", Status: domain.InventoryStatusMucho, Packages: floatPtr(2)},
		{ID: xid.New("inv"), Name: "Palillos chinos", Status: domain.InventoryStatusPoco, Packages: floatPtr(0.5)},
		{ID: xid.New("inv"), Name: "Harina", Status: domain.InventoryStatusMucho, ExactQuantity: intPtr(8)},
	}
}

func NewSeeded() *Store {
	s := &Store{
		clientsByID:     make(map[string]domain.Client),
		daysByDate:      make(map[string]domain.DaySnapshot),
		inventoryByID:   make(map[string]domain.InventoryItem),
		dessertsByID:    make(map[string]domain.Dessert),
		usersByUsername: seedUsers(),
	}
	for _, item := range seedInventory() {
		s.inventoryByID[item.ID] = item
		s.inventoryOrder = append(s.inventoryOrder, item.ID)
	}
	return s
}

func (s *Store) AppendHistory(_ context.Context, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, items...)
	return nil
}

func (s *Store) ListHistory(_ context.Context) ([]domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LineItem, len(s.history))
	copy(out, s.history)
	return out, nil
}

func (s *Store) DeleteOrder(_ context.Context, clientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.history[:0]
	removed := 0
	for _, it := range s.history {
		if it.ClientID == clientID {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed == 0 {
		return 0, store.ErrNotFound
	}
	s.history = kept
	return removed, nil
}

func (s *Store) ResetHistory(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return nil
}

func (s *Store) CreateClient(_ context.Context, client domain.Client) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(client.ID) == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.clientsByID[client.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	s.clientsByID[client.ID] = client
	s.clientOrder = append(s.clientOrder, client.ID)
	return &client, nil
}

func (s *Store) GetClient(_ context.Context, clientID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clientsByID[clientID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &client, nil
}

func (s *Store) ListClients(_ context.Context) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		out = append(out, s.clientsByID[id])
	}
	return out, nil
}

func (s *Store) CountClients(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clientsByID), nil
}

func (s *Store) ResetClients(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientsByID = make(map[string]domain.Client)
	s.clientOrder = nil
	return nil
}

func (s *Store) AddExpense(_ context.Context, expense domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, expense)
	return &expense, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) ResetExpenses(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = nil
	return nil
}

func (s *Store) SaveRegister(_ context.Context, info domain.RegisterInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.register = &info
	return nil
}

func (s *Store) GetRegister(_ context.Context) (*domain.RegisterInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.register == nil {
		return nil, store.ErrNotFound
	}
	info := *s.register
	return &info, nil
}

func (s *Store) SaveDay(_ context.Context, day domain.DaySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// re-closing the same date overwrites the snapshot
	s.daysByDate[day.Date] = day
	return nil
}

func (s *Store) GetDay(_ context.Context, date string) (*domain.DaySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, ok := s.daysByDate[date]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &day, nil
}

func (s *Store) ListDays(_ context.Context) ([]domain.DaySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DaySnapshot, 0, len(s.daysByDate))
	for _, day := range s.daysByDate {
		out = append(out, day)
	}
	slices.SortFunc(out, func(a, b domain.DaySnapshot) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out, nil
}

func (s *Store) ListInventory(_ context.Context) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(s.inventoryOrder))
	for _, id := range s.inventoryOrder {
		out = append(out, s.inventoryByID[id])
	}
	return out, nil
}

func (s *Store) CreateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	s.inventoryByID[item.ID] = item
	s.inventoryOrder = append(s.inventoryOrder, item.ID)
	return &item, nil
}

func (s *Store) UpdateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inventoryByID[item.ID]; !ok {
		return nil, store.ErrNotFound
	}
	s.inventoryByID[item.ID] = item
	return &item, nil
}

func (s *Store) ListDesserts(_ context.Context) ([]domain.Dessert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Dessert, 0, len(s.dessertOrder))
	for _, id := range s.dessertOrder {
		out = append(out, s.dessertsByID[id])
	}
	return out, nil
}

func (s *Store) GetDessert(_ context.Context, dessertID string) (*domain.Dessert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dessertsByID[dessertID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (s *Store) CreateDessert(_ context.Context, dessert domain.Dessert) (*domain.Dessert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(dessert.ID) == "" || strings.TrimSpace(dessert.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	s.dessertsByID[dessert.ID] = dessert
	s.dessertOrder = append(s.dessertOrder, dessert.ID)
	return &dessert, nil
}

func (s *Store) UpdateDessert(_ context.Context, dessert domain.Dessert) (*domain.Dessert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dessertsByID[dessert.ID]; !ok {
		return nil, store.ErrNotFound
	}
	s.dessertsByID[dessert.ID] = dessert
	return &dessert, nil
}

func (s *Store) DeleteDessert(_ context.Context, dessertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dessertsByID[dessertID]; !ok {
		return store.ErrNotFound
	}
	delete(s.dessertsByID, dessertID)
	s.dessertOrder = slices.DeleteFunc(s.dessertOrder, func(id string) bool {
		return id == dessertID
	})
	return nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByUsername[user.Username]; exists {
		return store.ErrInvalidInput
	}
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, u := range s.usersByUsername {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.usersByUsername[username]
	if !ok {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}
