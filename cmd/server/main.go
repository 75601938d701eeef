// Command server запускает API подбора команд и вспомогательные команды обслуживания.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "teambuilder",
	Short:         "Team Builder API server",
	Long:          "Поиск кандидатов, сохранение команд и живой поиск через WebSocket.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
