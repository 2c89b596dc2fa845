package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-dashboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is what other modules see of authentication: resolving a bearer
// token to a caller identity, and fetching an account's public view.
type AuthPort interface {
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// AuthAdapter implements AuthPort by calling the auth module through the
// service container, keeping the API layer decoupled from auth internals.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates an adapter over the given container.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{container: container}
}

// ValidateToken resolves a bearer token into caller claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token call: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token rejected: %s", resp.Error)
	}
	return &domain.Claims{UserID: resp.UserID, Email: resp.Email}, nil
}

// GetUser fetches the public view of an account by id.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user call: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Name:      resp.Name,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}
