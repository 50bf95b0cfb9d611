package handlers

import (
	"context"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
)

// Gateway is the slice of the delivery API client the page handlers use.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*deliveryapi.LoginResult, error)
	Register(ctx context.Context, firstName, lastName, email, password string) (string, error)
	ListAll(ctx context.Context, token string) ([]domain.Delivery, error)
	ListMine(ctx context.Context, token string) ([]domain.Delivery, error)
	Create(ctx context.Context, token, customerName, address string) (string, error)
	UpdateStatus(ctx context.Context, token, id string, status domain.Status) (string, error)
	Delete(ctx context.Context, token, id string) (string, error)
}

var _ Gateway = (*deliveryapi.Client)(nil)
