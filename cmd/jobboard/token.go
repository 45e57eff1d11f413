package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/middleware"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the REST API",
	Long:  "Signs a JWT with JWT_SECRET for a candidate, recruiter, college or admin principal. Identity management lives outside jobboard; this is for operators and tests.",
	RunE:  runToken,
}

var (
	tokenUserID  string
	tokenRole    string
	tokenCollege string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "Principal ID (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", middleware.RoleCandidate, "Role: candidate, recruiter, college or admin")
	tokenCmd.Flags().StringVar(&tokenCollege, "college", "", "College name for college principals")

	if err := tokenCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id %q: %w", tokenUserID, err)
	}

	switch tokenRole {
	case middleware.RoleCandidate, middleware.RoleRecruiter, middleware.RoleAdmin:
	case middleware.RoleCollege:
		if tokenCollege == "" {
			return fmt.Errorf("--college is required for college tokens")
		}
	default:
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(middleware.Principal{
		UserID:  userID,
		Role:    tokenRole,
		College: tokenCollege,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
