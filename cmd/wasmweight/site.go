package main

import (
	"fmt"
	"log/slog"

	"wasmweight/internal/config"
	werrors "wasmweight/internal/errors"
	"wasmweight/internal/history"
	"wasmweight/internal/model"
	"wasmweight/internal/notify"

	"github.com/spf13/cobra"
)

var (
	siteLocal string
	siteGit   string
	siteDB    bool
)

var siteCmd = &cobra.Command{
	Use:   "site <output>",
	Short: "Build the website time series from archived snapshots",
	Long: `Reads the dated snapshots under DIR/builds, orders them by date and writes the
most recent ones as a JSON time series.

Use --local for an existing checkout of the data repository, or --git to
clone it first when DIR does not exist yet. With --db the full history is
also exported to the configured database.`,
	Args: cobra.ExactArgs(1),
	RunE: runSite,
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.Flags().StringVar(&siteLocal, "local", "", "Use snapshot data in `DIR`")
	siteCmd.Flags().StringVar(&siteGit, "git", "", "Clone snapshot data into `DIR`")
	siteCmd.Flags().Int("window", config.DefaultWindow, "Number of most recent builds to publish")
	siteCmd.Flags().String("data-repo", config.DefaultDataRepo, "Repository cloned by --git")
	siteCmd.Flags().BoolVar(&siteDB, "db", false, "Export every build to the configured database")
	siteCmd.Flags().String("db-type", "", "Database type: sqlite or postgres")
	siteCmd.Flags().String("db-url", "", "SQLite path or Postgres DSN")
	siteCmd.MarkFlagsMutuallyExclusive("local", "git")

	bindTo(siteCmd.Flags(), "window", "window")
	bindTo(siteCmd.Flags(), "data-repo", "data_repo")
	bindTo(siteCmd.Flags(), "db-type", "db.type")
	bindTo(siteCmd.Flags(), "db-url", "db.url")
}

func runSite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Get()

	var snapshots string
	switch {
	case siteGit != "":
		dir, err := history.EnsureDataRepo(ctx, newGitClient(), cfg.DataRepo, siteGit)
		if err != nil {
			return err
		}
		snapshots = dir
	case siteLocal != "":
		snapshots = history.SnapshotDir(siteLocal)
	default:
		return werrors.Configurationf("must specify --local or --git")
	}

	builds, err := history.ReadBuilds(snapshots)
	if err != nil {
		return err
	}

	latest := history.Latest(builds, cfg.Window)
	if err := history.WriteSeries(args[0], latest); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d of %d build(s) to %s\n", len(latest), len(builds), args[0])

	if siteDB {
		if err := exportBuilds(cmd, cfg.DB, builds); err != nil {
			return err
		}
	}

	if len(latest) > 0 {
		notify.Send(ctx, newNotifier(cfg.Slack), fmt.Sprintf("wasmweight: published %d builds up to %s", len(latest), latest[len(latest)-1].Date))
	}
	return nil
}

func exportBuilds(cmd *cobra.Command, dbCfg config.DBConfig, builds []model.Build) error {
	st, err := newStore(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", dbCfg.Type, err)
	}
	defer st.Close()

	if err := st.SaveBuilds(cmd.Context(), builds); err != nil {
		return fmt.Errorf("failed to export builds: %w", err)
	}
	slog.Info("exported builds", "count", len(builds), "db", dbCfg.Type)
	return nil
}
