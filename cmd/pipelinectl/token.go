package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Выдать токен оператора",
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenName   string
	tokenRole   string
	tokenTTL    time.Duration
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "Идентификатор оператора (обязательно)")
	tokenCmd.Flags().StringVarP(&tokenName, "name", "n", "", "Имя оператора")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", string(models.HrUserRole), "Роль: hr_admin, hr_user, reviewer")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Срок действия токена")

	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	role := models.UserRole(tokenRole)
	if !role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", tokenRole)
	}
	token, err := authutils.GetToken(tokenUserID, tokenName, role, tokenTTL)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования токена")
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
