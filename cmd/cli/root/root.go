package root

import (
	"github.com/crucial707/todo-api/cmd/cli/config"
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "todo",
	Short:         "Todo API CLI",
	Long:          "Command line interface for interacting with the Todo API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&config.APIURLFlag, "api-url", "",
		"Todo API base URL (default $TODO_API_URL or http://localhost:5000)")
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
