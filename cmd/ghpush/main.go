package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ghpush/internal/infrastructure/controllers"
)

func buildRootCommand(pushController *controllers.PushController) *cobra.Command {
	bind := pushController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          pushController.ValidateArgs,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			// past argument validation, errors are not usage problems
			command.SilenceUsage = true
			return pushController.Execute(command, args)
		},
	}

	pushController.AddFlags(cmd)
	return cmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	pushController := injectPushController()
	cobraRoot := buildRootCommand(pushController)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'ghpush': %s", err)
	}
}
