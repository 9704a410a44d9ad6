package repo

import (
	"context"

	"github.com/salespilot/backoffice/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}
