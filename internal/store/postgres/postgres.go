package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"ryusushi/pos/internal/domain"
	"ryusushi/pos/internal/store"
	"ryusushi/pos/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AppendHistory(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO history_items (id, item_type, name, price, original_price, is_promotional, details, item_time, client_id, client_name)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, xid.New("line"), it.Type, it.Name, it.Price, it.OriginalPrice, it.IsPromotional, it.Details, it.Time.UTC(), it.ClientID, it.ClientName.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListHistory(ctx context.Context) ([]domain.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_type, name, price, original_price, is_promotional, details, item_time, client_id, client_name
		FROM history_items
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0, 128)
	for rows.Next() {
		var it domain.LineItem
		var clientName string
		if err := rows.Scan(&it.Type, &it.Name, &it.Price, &it.OriginalPrice, &it.IsPromotional, &it.Details, &it.Time, &it.ClientID, &clientName); err != nil {
			return nil, err
		}
		it.Time = it.Time.UTC()
		it.ClientName = domain.ClientName(clientName)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteOrder(ctx context.Context, clientID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM history_items WHERE client_id = $1
	`, clientID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, store.ErrNotFound
	}
	return int(affected), nil
}

func (s *Store) ResetHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history_items`)
	return err
}

func (s *Store) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	if strings.TrimSpace(client.ID) == "" {
		return nil, store.ErrInvalidInput
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, discount, created_at)
		VALUES ($1,$2,$3,$4)
	`, client.ID, client.Name, client.Discount, client.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}
	return &client, nil
}

func (s *Store) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	var client domain.Client
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, discount, created_at
		FROM clients
		WHERE id = $1
	`, clientID).Scan(&client.ID, &client.Name, &client.Discount, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	client.CreatedAt = client.CreatedAt.UTC()
	return &client, nil
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, discount, created_at
		FROM clients
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, 32)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Discount, &client.CreatedAt); err != nil {
			return nil, err
		}
		client.CreatedAt = client.CreatedAt.UTC()
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *Store) CountClients(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ResetClients(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clients`)
	return err
}

func (s *Store) AddExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	if expense.ID == "" {
		expense.ID = xid.New("exp")
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, amount, created_at)
		VALUES ($1,$2,$3,$4)
	`, expense.ID, expense.Description, expense.Amount, expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount, created_at
		FROM expenses
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0, 32)
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *Store) ResetExpenses(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM expenses`)
	return err
}

// SaveRegister holds the single open-of-day record, so the table keeps
// exactly one row.
func (s *Store) SaveRegister(ctx context.Context, info domain.RegisterInfo) error {
	if info.SavedAt.IsZero() {
		info.SavedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO register_info (singleton, cash_in_box, open_date, worker_name, address, hours, saved_at)
		VALUES (true,$1,$2,$3,$4,$5,$6)
		ON CONFLICT (singleton)
		DO UPDATE SET cash_in_box = EXCLUDED.cash_in_box, open_date = EXCLUDED.open_date,
			worker_name = EXCLUDED.worker_name, address = EXCLUDED.address,
			hours = EXCLUDED.hours, saved_at = EXCLUDED.saved_at
	`, info.CashInBox, info.Date, info.WorkerName, info.Address, info.Hours, info.SavedAt)
	return err
}

func (s *Store) GetRegister(ctx context.Context) (*domain.RegisterInfo, error) {
	var info domain.RegisterInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT cash_in_box, open_date, worker_name, address, hours, saved_at
		FROM register_info
		WHERE singleton
	`).Scan(&info.CashInBox, &info.Date, &info.WorkerName, &info.Address, &info.Hours, &info.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	info.SavedAt = info.SavedAt.UTC()
	return &info, nil
}

func (s *Store) SaveDay(ctx context.Context, day domain.DaySnapshot) error {
	if day.Date == "" {
		return store.ErrInvalidInput
	}
	if day.SavedAt.IsZero() {
		day.SavedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(day.Items)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_days (day_date, items, saved_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (day_date)
		DO UPDATE SET items = EXCLUDED.items, saved_at = EXCLUDED.saved_at
	`, day.Date, payload, day.SavedAt)
	return err
}

func (s *Store) GetDay(ctx context.Context, date string) (*domain.DaySnapshot, error) {
	var day domain.DaySnapshot
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT day_date, items, saved_at
		FROM saved_days
		WHERE day_date = $1
	`, date).Scan(&day.Date, &payload, &day.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &day.Items); err != nil {
		return nil, err
	}
	day.SavedAt = day.SavedAt.UTC()
	return &day, nil
}

func (s *Store) ListDays(ctx context.Context) ([]domain.DaySnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day_date, items, saved_at
		FROM saved_days
		ORDER BY day_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]domain.DaySnapshot, 0, 32)
	for rows.Next() {
		var day domain.DaySnapshot
		var payload []byte
		if err := rows.Scan(&day.Date, &payload, &day.SavedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &day.Items); err != nil {
			return nil, err
		}
		day.SavedAt = day.SavedAt.UTC()
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (s *Store) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, status, packages, exact_quantity
		FROM inventory_items
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 16)
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Status, &it.Packages, &it.ExactQuantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (id, name, status, packages, exact_quantity)
		VALUES ($1,$2,$3,$4,$5)
	`, item.ID, item.Name, item.Status, item.Packages, item.ExactQuantity)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET name = $2, status = $3, packages = $4, exact_quantity = $5
		WHERE id = $1
	`, item.ID, item.Name, item.Status, item.Packages, item.ExactQuantity)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *Store) ListDesserts(ctx context.Context) ([]domain.Dessert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, image_uri
		FROM desserts
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	desserts := make([]domain.Dessert, 0, 16)
	for rows.Next() {
		var d domain.Dessert
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &d.ImageURI); err != nil {
			return nil, err
		}
		desserts = append(desserts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return desserts, nil
}

func (s *Store) GetDessert(ctx context.Context, dessertID string) (*domain.Dessert, error) {
	var d domain.Dessert
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, image_uri
		FROM desserts
		WHERE id = $1
	`, dessertID).Scan(&d.ID, &d.Name, &d.Price, &d.ImageURI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *Store) CreateDessert(ctx context.Context, dessert domain.Dessert) (*domain.Dessert, error) {
	if strings.TrimSpace(dessert.ID) == "" || strings.TrimSpace(dessert.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO desserts (id, name, price, image_uri)
		VALUES ($1,$2,$3,$4)
	`, dessert.ID, dessert.Name, dessert.Price, dessert.ImageURI)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}
	return &dessert, nil
}

func (s *Store) UpdateDessert(ctx context.Context, dessert domain.Dessert) (*domain.Dessert, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE desserts
		SET name = $2, price = $3, image_uri = $4
		WHERE id = $1
	`, dessert.ID, dessert.Name, dessert.Price, dessert.ImageURI)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	return &dessert, nil
}

func (s *Store) DeleteDessert(ctx context.Context, dessertID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM desserts WHERE id = $1`, dessertID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = "cashier"
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
