package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils"
	"github.com/spf13/cobra"
)

func newCreateLibrarianCmd(logger *slog.Logger) *cobra.Command {
	var req dto.CreateLibrarianRequest

	cmd := &cobra.Command{
		Use:   "create-librarian",
		Short: "Create a librarian account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			generated := req.Password == ""
			if generated {
				pw, err := utils.GenerateSecureRandomString(12)
				if err != nil {
					return fmt.Errorf("generate password: %w", err)
				}
				req.Password = pw
			}

			ctx := cmd.Context()
			rt, err := openRuntime(ctx, logger)
			if err != nil {
				return err
			}
			defer rt.Close(logger)

			librarian, err := rt.container.Auth.CreateLibrarian(ctx, req, "")
			if err != nil {
				return err
			}
			cmd.Printf("Created librarian %s (%s)\n", librarian.Username, librarian.LibrarianID)
			if generated {
				cmd.Printf("Generated password: %s\n", req.Password)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, generated when empty")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// ensureBootstrapLibrarian creates the configured first account unless the
// username is already taken.
func ensureBootstrapLibrarian(ctx context.Context, auth portssvc.AuthSvcFacade, username, password string, logger *slog.Logger) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := auth.CreateLibrarian(ctx, dto.CreateLibrarianRequest{
		Username: username,
		Name:     username,
		Password: password,
	}, "")
	switch {
	case err == nil:
		logger.Info("Bootstrap librarian created", slog.String("username", username))
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Debug("Bootstrap librarian already exists", slog.String("username", username))
	default:
		return fmt.Errorf("create bootstrap librarian: %w", err)
	}
	return nil
}
