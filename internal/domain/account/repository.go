package account

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
}
