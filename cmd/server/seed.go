package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/teambuilder-backend/internal/service"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Импортировать профили кандидатов",
	Long:  "Импортирует профили из JSON файла (--file) или встроенный демонстрационный набор. Документ проверяется JSON схемой.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		seeder, err := service.NewSeedService(a.profiles, a.afterImport)
		if err != nil {
			return err
		}

		var n int
		if seedFile == "" {
			n, err = seeder.SeedDefault(ctx)
		} else {
			var doc []byte
			if doc, err = os.ReadFile(seedFile); err != nil {
				return fmt.Errorf("чтение %s: %w", seedFile, err)
			}
			n, err = seeder.Import(ctx, doc)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d candidates\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "JSON файл с массивом кандидатов")
	rootCmd.AddCommand(seedCmd)
}
