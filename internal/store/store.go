package store

import (
	"context"
	"errors"

	"ryusushi/pos/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repository interface {
	AppendHistory(ctx context.Context, items []domain.LineItem) error
	ListHistory(ctx context.Context) ([]domain.LineItem, error)
	DeleteOrder(ctx context.Context, clientID string) (int, error)
	ResetHistory(ctx context.Context) error

	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	CountClients(ctx context.Context) (int, error)
	ResetClients(ctx context.Context) error

	AddExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ResetExpenses(ctx context.Context) error

	SaveRegister(ctx context.Context, info domain.RegisterInfo) error
	GetRegister(ctx context.Context) (*domain.RegisterInfo, error)

	SaveDay(ctx context.Context, day domain.DaySnapshot) error
	GetDay(ctx context.Context, date string) (*domain.DaySnapshot, error)
	ListDays(ctx context.Context) ([]domain.DaySnapshot, error)

	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)

	ListDesserts(ctx context.Context) ([]domain.Dessert, error)
	GetDessert(ctx context.Context, dessertID string) (*domain.Dessert, error)
	CreateDessert(ctx context.Context, dessert domain.Dessert) (*domain.Dessert, error)
	UpdateDessert(ctx context.Context, dessert domain.Dessert) (*domain.Dessert, error)
	DeleteDessert(ctx context.Context, dessertID string) error

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
