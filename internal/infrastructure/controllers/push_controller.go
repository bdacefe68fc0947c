package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ghpush/internal/domain/commands"
	"github.com/rios0rios0/ghpush/internal/domain/entities"
)

// ErrUsage is returned when the positional arguments are incomplete.
var ErrUsage = errors.New("requires <owner>/<repo> followed by at least one file, or --all")

var _ entities.Controller = (*PushController)(nil)

// PushController handles the root command: ghpush <owner>/<repo> <files...>.
type PushController struct {
	command   commands.Push
	lookupEnv func(string) string
}

// NewPushController creates a new PushController.
func NewPushController(command commands.Push) *PushController {
	return &PushController{command: command, lookupEnv: os.Getenv}
}

// GetBind returns the Cobra command metadata for the push controller.
func (it *PushController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "ghpush <owner>/<repo> <file>... | --all",
		Short: "Push files to GitHub through the Contents API",
		Long: `Push files to GitHub when 'git push' fails through proxies.

Each file is committed on its own through the REST Contents API, using the
same path on GitHub as locally. Existing files are updated in place.

Usage:
  ghpush owner/repo file1.txt file2.txt
  ghpush owner/repo --all            Upload every file tracked by git

The token is taken from --token, the config file, or GITHUB_TOKEN.`,
	}
}

// AddFlags adds the push-specific flags to the given Cobra command.
func (it *PushController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("all", false, "Upload every file tracked by the local git index")
	cmd.Flags().StringP("branch", "b", "", "Branch to commit to (default \"main\")")
	cmd.Flags().String("token", "", "GitHub token (overrides config file and GITHUB_TOKEN)")
	cmd.Flags().String("api-url", "", "REST API base URL, e.g. https://ghe.example.com/api/v3")
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: auto-detect)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
}

// ValidateArgs requires the repository plus files, or the repository and --all.
func (it *PushController) ValidateArgs(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if len(args) == 0 || (len(args) < 2 && !all) { //nolint:mnd // repo + at least one file
		return ErrUsage
	}
	return nil
}

// Execute runs a push. Errors returned here are fatal for the process;
// per-file failures only show up in the printed summary.
func (it *PushController) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := it.ValidateArgs(cmd, args); err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	branch := settings.Branch
	if flagBranch, _ := cmd.Flags().GetString("branch"); flagBranch != "" {
		branch = flagBranch
	}
	target, err := entities.ParseTarget(args[0], branch)
	if err != nil {
		return err
	}

	configured := settings.Token
	if flagToken, _ := cmd.Flags().GetString("token"); flagToken != "" {
		configured = flagToken
	}
	token, err := entities.ResolveCredential(configured, it.lookupEnv)
	if err != nil {
		return err
	}

	apiURL := settings.APIURL
	if flagAPIURL, _ := cmd.Flags().GetString("api-url"); flagAPIURL != "" {
		apiURL = flagAPIURL
	}
	all, _ := cmd.Flags().GetBool("all")

	logger.Debugf("Pushing to %s on branch %s", target.FullName(), target.Branch)
	_, err = it.command.Execute(ctx, commands.PushOptions{
		Target: target,
		Token:  token,
		APIURL: apiURL,
		WebURL: settings.WebURL,
		Files:  args[1:],
		All:    all,
		Output: cmd.OutOrStdout(),
	})
	return err
}

// loadSettings reads the config file named by --config, or the first one
// found in the default locations. No config file at all is fine.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file: %v", err)
			return &entities.Settings{}, nil
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}
