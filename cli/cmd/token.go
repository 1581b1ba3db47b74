package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
	"github.com/telhawk-systems/ocsf-mcp/internal/middleware"
)

// EnvJWTSecret matches the server's auth.jwt_secret environment override.
const EnvJWTSecret = "OCSF_AUTH_JWT_SECRET"

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a server with auth enabled",
	Long: `Mint an HS256 bearer token signed with the server's shared secret.

The secret is read from --secret or $OCSF_AUTH_JWT_SECRET.`,
	Example: `  OCSF_AUTH_JWT_SECRET=s3cret ocsfctl token --subject ci --ttl 24h
  ocsfctl login --token "$(ocsfctl token --secret s3cret --subject me)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			secret = os.Getenv(EnvJWTSecret)
		}
		if secret == "" {
			return fmt.Errorf("a signing secret is required (--secret or $%s)", EnvJWTSecret)
		}
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive")
		}

		now := time.Now()
		claims := jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    "ocsfctl",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		}

		token, err := middleware.NewTokenVerifier(secret).Sign(claims)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}

		if handled, err := output.Structured(outputFormat(cmd), map[string]any{
			"token":      token,
			"subject":    subject,
			"expires_at": claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
		}); handled {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("secret", "", "Shared HS256 secret")
	tokenCmd.Flags().String("subject", "ocsfctl", "Token subject")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
