package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/lib/fixtures"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
)

var fixturesCmd = &cobra.Command{
	Use:   "check-fixtures",
	Short: "Проверить файл начальных данных",
	Long:  "Разбирает файл начальных данных и показывает, сколько участий кандидатов будет исправлено или пропущено при загрузке.",
	RunE:  runCheckFixtures,
}

var fixturesPath string

func init() {
	fixturesCmd.Flags().StringVarP(&fixturesPath, "path", "p", "", "Путь к файлу, по умолчанию из конфигурации")

	rootCmd.AddCommand(fixturesCmd)
}

func runCheckFixtures(cmd *cobra.Command, _ []string) error {
	path := fixturesPath
	if path == "" {
		path = config.Conf.Fixtures.Path
	}
	snapshot, err := fixtures.Load(path)
	if err != nil {
		return err
	}
	report := pipelinestate.NewInstance(nil).Restore(snapshot)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "процессов: %d, кандидатов: %d, участий: %d\n",
		len(snapshot.Processes), len(snapshot.Candidates), len(snapshot.Associations))
	fmt.Fprintf(out, "исправлено: %d, пропущено: %d\n", report.Repaired, report.Dropped)
	return nil
}
