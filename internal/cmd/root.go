// Package cmd contains the fmriprepgr CLI command.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/comppsych/fmriprepgr/internal/chunker"
	"github.com/comppsych/fmriprepgr/internal/config"
	"github.com/comppsych/fmriprepgr/internal/group"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fmriprepgr [flags] <fmriprep_output_path>",
	Short: "Make a consolidated group report from an fMRIPrep output directory",
	Long: `fmriprepgr consolidates the per-subject QC reports an fMRIPrep run
produced into per-report-type, paginated group review pages with rating
and note controls, written to <fmriprep_output_path>/group.

Subject figure directories are symlinked into the group tree. Requesting
any image edit (--flip-images, --drop-background, --drop-foreground)
switches to copying instead, so the original figures are never modified.
Each report type may only be modified in a single way.

Examples:
  fmriprepgr /data/fmriprep
  fmriprepgr --reports-per-page 25 /data/fmriprep
  fmriprepgr -f sdc --drop-background reconall /data/fmriprep
  fmriprepgr --path-to-figures '../../sub-{subject}/figures' /data/fmriprep`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with flag defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().Int("reports-per-page", chunker.DefaultPerPage,
		"figures per page; 0 puts every figure of a report type on one page")
	rootCmd.Flags().String("path-to-figures", "",
		"relative path from group/sub-{subject} to the subject's figures directory; empty infers it from the report location")
	rootCmd.Flags().StringSliceP("flip-images", "f", nil,
		"report types where the image shown on mouseover is flipped; repeatable")
	rootCmd.Flags().StringSlice("drop-background", nil,
		"report types where the image shown before mousing over is dropped; repeatable")
	rootCmd.Flags().StringSlice("drop-foreground", nil,
		"report types where the image shown on mouseover is dropped; repeatable")

	// Flags override config-file values, which override defaults.
	_ = viper.BindPFlag("reports_per_page", rootCmd.Flags().Lookup("reports-per-page"))
	_ = viper.BindPFlag("path_to_figures", rootCmd.Flags().Lookup("path-to-figures"))
	_ = viper.BindPFlag("flip_images", rootCmd.Flags().Lookup("flip-images"))
	_ = viper.BindPFlag("drop_background", rootCmd.Flags().Lookup("drop-background"))
	_ = viper.BindPFlag("drop_foreground", rootCmd.Flags().Lookup("drop-foreground"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Config{
		OutputPath:     args[0],
		ReportsPerPage: viper.GetInt("reports_per_page"),
		PathToFigures:  viper.GetString("path_to_figures"),
		FlipImages:     viper.GetStringSlice("flip_images"),
		DropBackground: viper.GetStringSlice("drop_background"),
		DropForeground: viper.GetStringSlice("drop_foreground"),
	}

	summary, err := group.Build(cfg, log)
	if err != nil {
		return err
	}

	color.Green("Consolidated %d figures from %d subjects into %d pages across %d report types.",
		summary.Elements, summary.Subjects, summary.Pages, summary.ReportTypes)
	return nil
}
