// Package users implements the Credential Store: durable, email-keyed
// storage of User records. Email uniqueness is enforced here and nowhere
// else; callers' own existence checks are advisory.
package users

import (
	"context"

	"github.com/dmitrijs2005/siteauth/internal/server/models"
)

// Repository is the Credential Store contract.
//
//   - FindByEmail / FindByID return common.ErrorNotFound when absent.
//   - Insert assigns ID and CreatedAt and returns the stored record. It fails
//     with common.ErrorAlreadyExists when the email is taken. The passed user
//     is not modified.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}
