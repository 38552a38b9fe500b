package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/callegarimattia/starfleet/internal/controller"
	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/callegarimattia/starfleet/internal/identity"
	"github.com/google/uuid"
)

var _ controller.IdentityService = (*MemoryIdentityService)(nil)

// MemoryIdentityService tracks users in memory and issues tokens through an
// identity.Issuer.
type MemoryIdentityService struct {
	mu    sync.RWMutex
	users map[string]dto.User // internal user ID -> User

	// identities links a platform identity ("source:extID") to an internal user ID.
	identities map[string]string

	issuer *identity.Issuer
}

// NewMemoryIdentityService creates a MemoryIdentityService signing tokens with the
// given secret (empty falls back to identity.DefaultSecret).
func NewMemoryIdentityService(jwtSecret string) *MemoryIdentityService {
	return &MemoryIdentityService{
		users:      make(map[string]dto.User),
		identities: make(map[string]string),
		issuer:     identity.NewIssuer(jwtSecret),
	}
}

// LoginOrRegister finds an existing user or creates a new one.
// source: "web", "discord", "cli"
// extID: the unique ID provided by that platform (a username for web/CLI, a Discord
// user ID for Discord).
func (s *MemoryIdentityService) LoginOrRegister(
	_ context.Context,
	username, source, extID string,
) (dto.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lookupKey := fmt.Sprintf("%s:%s", source, extID)

	var user dto.User
	if internalID, exists := s.identities[lookupKey]; exists {
		user = s.users[internalID]
	} else {
		user = dto.User{ID: fmt.Sprintf("user-%s", uuid.NewString()), Username: username}
		s.users[user.ID] = user
		s.identities[lookupKey] = user.ID
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: user}, nil
}
