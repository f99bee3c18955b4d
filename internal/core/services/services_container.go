package services

import (
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	// The policy is built once from config and copied into the services that apply it.
	policy := cfg.Policy

	return &portssvc.ServiceContainer{
		Catalog:    NewCatalogService(repos, opts...),
		Membership: NewMembershipService(repos, policy, opts...),
		Loan:       NewLoanService(repos, policy, opts...),
		Fine:       NewFineService(repos, policy, opts...),
		Auth: NewAuthService(repos, TokenSettings{
			Secret: cfg.JWTSecret,
			Expiry: cfg.JWTExpiryDuration,
			Issuer: cfg.JWTIssuer,
		}, opts...),
	}
}
