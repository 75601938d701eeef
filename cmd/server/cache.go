package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Обслуживание кэша кандидатов",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Очистить кэш значений фильтров",
	Long:  "Удаляет кэшированные значения фильтров в Redis. Кэш в памяти процесса очищается через POST /api/admin/cache/invalidate.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if a.redis == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "REDIS_URL не задан, общий кэш отсутствует")
			return nil
		}
		if err := a.candidates.InvalidateCache(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
