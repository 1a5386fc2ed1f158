package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"hr-pipeline-backend/config"
)

var rootCmd = &cobra.Command{
	Use:   "pipelinectl",
	Short: "Служебные команды доски подбора",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
	},
}

func main() {
	// переменные окружения из .env, если файл есть
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
