package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/gitget/internal/app"
	"github.com/quantmind-br/gitget/internal/config"
	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/manifest"
	"github.com/quantmind-br/gitget/internal/output"
	"github.com/quantmind-br/gitget/internal/source"
	"github.com/quantmind-br/gitget/internal/utils"
	"github.com/quantmind-br/gitget/pkg/version"
)

var (
	// Dependencies for testing
	getenv    config.Getenv = os.Getenv
	newSource               = source.New
	appFs                   = afero.NewOsFs()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, config.IsAgent(getenv), err)
		os.Exit(domain.ExitCode(err))
	}
}

// reportError prints err once. Pipeline agents pick up the logging command
// and flag the step as failed.
func reportError(w io.Writer, agent bool, err error) {
	if agent {
		fmt.Fprintf(w, "##vso[task.logissue type=error]%s\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}

// cliOptions holds the flags that are not bound to viper
type cliOptions struct {
	cfgFile  string
	manifest string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "gitget [repo] [remote-path] [local-path] [ref]",
		Short: "Mirror a file or folder from a remote Git repository",
		Long: `gitget copies a single file or a whole folder out of a remote Git
repository to local disk, at a branch, a tag, or a commit.

Inside an Azure Pipelines agent the parameters come from the task inputs.
Interactively they come from the arguments, with the server and credentials
read from TFSURL, PAT, and PROJECT or from the flags and config file.`,
		Version:       version.Short(),
		Args:          cobra.MaximumNArgs(4),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.gitget/config.yaml)")
	flags.String("provider", config.DefaultProvider, "Source provider: azure, github, or git")
	flags.String("url", "", "Collection URL, GitHub API URL, or Git base URL")
	flags.String("token", "", "Personal access token")
	flags.String("project", "", "Project (azure) or owner (github) used to pick the repository")
	flags.StringVar(&opts.manifest, "manifest", "", "Run the jobs of a YAML or JSON manifest")
	flags.Bool("dry-run", false, "List what would be written without touching the disk")
	flags.Bool("progress", false, "Show a progress spinner")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	_ = v.BindPFlag("source.provider", flags.Lookup("provider"))
	_ = v.BindPFlag("source.url", flags.Lookup("url"))
	_ = v.BindPFlag("source.token", flags.Lookup("token"))
	_ = v.BindPFlag("source.project", flags.Lookup("project"))
	_ = v.BindPFlag("output.dry_run", flags.Lookup("dry-run"))
	_ = v.BindPFlag("output.progress", flags.Lookup("progress"))

	rootCmd.AddCommand(newDoctorCmd(v, opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newLogger(cfg *config.Config, verbose, agent bool) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		NoColor: agent,
	})
}

func run(cmd *cobra.Command, v *viper.Viper, opts *cliOptions, args []string) error {
	cfg, err := config.Load(v, utils.ExpandPath(opts.cfgFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	inputs := config.ResolveInputs(getenv, args)
	inputs.ApplySource(cfg.Source)

	log := newLogger(cfg, opts.verbose, inputs.Agent)

	var jobs *manifest.Config
	if opts.manifest != "" {
		jobs, err = manifest.NewLoaderWithFs(appFs).Load(utils.ExpandPath(opts.manifest))
		if err != nil {
			return err
		}
	} else if !inputs.Agent && len(args) == 0 {
		return cmd.Help()
	} else if inputs.RemotePath == "" {
		return domain.NewValidationError("remote-path", "a remote path to mirror is required")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	src, err := newSource(ctx, source.Options{
		Provider: cfg.Source.Provider,
		URL:      inputs.URL,
		Token:    inputs.Token,
		Bearer:   inputs.Bearer,
		Project:  inputs.Project,
		Timeout:  cfg.Source.Timeout,
	})
	if err != nil {
		return err
	}

	var progress output.Progress
	if cfg.Output.Progress && !inputs.Agent {
		bar := utils.NewProgressBar(utils.ProgressOptions{
			Total:       -1,
			Description: utils.DescMirroring,
		})
		defer func() { _ = bar.Finish() }()
		progress = bar
	}

	dryRun := cfg.Output.DryRun
	if jobs != nil && jobs.Options.DryRun {
		dryRun = true
	}

	orchestrator, err := app.NewOrchestrator(app.Options{
		Source:                  src,
		Fs:                      appFs,
		Logger:                  log,
		Progress:                progress,
		DefaultWorkingDirectory: inputs.DefaultWorkingDirectory,
		DryRun:                  dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if jobs != nil {
		_, err = orchestrator.RunManifest(ctx, jobs, inputs.Project)
	} else {
		_, err = orchestrator.Run(ctx, app.Request{
			Project:    inputs.Project,
			RepoID:     inputs.RepoID,
			RemotePath: inputs.RemotePath,
			LocalPath:  inputs.LocalPath,
			Ref:        inputs.Ref,
		})
	}
	if err != nil {
		log.Debug().Str("kind", domain.Kind(err)).Msg("Mirror failed")
	}
	return err
}

func newDoctorCmd(v *viper.Viper, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and connectivity",
		Long:  "Verifies that the configuration loads, credentials are present, the remote answers, and the destination is writable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking gitget setup...")
			allPassed := true

			// Check 1: Config file
			fmt.Fprint(out, "  Config file: ")
			cfg, err := config.Load(v, utils.ExpandPath(opts.cfgFile))
			if err != nil {
				fmt.Fprintf(out, "WARN (%v)\n", err)
				cfg = config.Default()
			} else if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "OK (%s)\n", used)
			} else {
				fmt.Fprintf(out, "OK (defaults, no %s)\n", config.ConfigFilePath())
			}

			inputs := config.ResolveInputs(getenv, nil)
			inputs.ApplySource(cfg.Source)

			// Check 2: Run mode
			fmt.Fprint(out, "  Run mode: ")
			if inputs.Agent {
				fmt.Fprintln(out, "pipeline agent")
			} else {
				fmt.Fprintln(out, "interactive")
			}

			// Check 3: Credentials
			fmt.Fprint(out, "  Credentials: ")
			if inputs.Token != "" {
				fmt.Fprintln(out, "OK")
			} else {
				fmt.Fprintln(out, "WARN (no token, anonymous access only)")
			}

			// Check 4: Remote
			fmt.Fprintf(out, "  Remote (%s): ", cfg.Source.Provider)
			src, err := newSource(cmd.Context(), source.Options{
				Provider: cfg.Source.Provider,
				URL:      inputs.URL,
				Token:    inputs.Token,
				Bearer:   inputs.Bearer,
				Project:  inputs.Project,
				Timeout:  cfg.Source.Timeout,
			})
			if err != nil {
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
			} else {
				status, ok := checkRemote(cmd.Context(), src, inputs)
				fmt.Fprintln(out, status)
				allPassed = allPassed && ok
			}

			// Check 5: Write permissions
			dir := inputs.DefaultWorkingDirectory
			if dir == "" {
				dir = "."
			}
			fmt.Fprint(out, "  Write permissions: ")
			if checkWritePermissions(appFs, dir) {
				fmt.Fprintf(out, "OK (%s)\n", dir)
			} else {
				fmt.Fprintf(out, "FAILED (%s)\n", dir)
				allPassed = false
			}

			fmt.Fprintln(out)
			if allPassed {
				fmt.Fprintln(out, "All critical checks passed!")
			} else {
				fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
			}
			return nil
		},
	}
}

// checkRemote makes one cheap read against the remote: the refs of the
// configured repository, else the repositories of the project
func checkRemote(ctx context.Context, src domain.SourceControl, inputs config.Inputs) (string, bool) {
	var err error
	switch {
	case inputs.RepoID != "":
		_, err = src.ListRefs(ctx, inputs.RepoID)
	case inputs.Project != "":
		_, err = src.ListRepositories(ctx, inputs.Project)
	default:
		return "SKIPPED (no repository or project configured)", true
	}

	switch {
	case err == nil:
		return "OK", true
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return "SKIPPED (provider cannot list repositories)", true
	default:
		return fmt.Sprintf("FAILED (%v)", err), false
	}
}

// checkWritePermissions checks if a file can be created in dir
func checkWritePermissions(fs afero.Fs, dir string) bool {
	f, err := afero.TempFile(fs, dir, ".gitget_test_write")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	_ = fs.Remove(name)
	return true
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
