package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/solar-terminal/internal/journal"
	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/performance"
)

var (
	triggerDate  string
	perfDays     int
	fetchesLimit int
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the prediction backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			report, err := newClient(cfg).GetStatus(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", cfg.APIURL)
			fmt.Fprintf(out, "status:  %s\n", report.Status)
			if !report.Time.IsZero() {
				fmt.Fprintf(out, "time:    %s\n", report.Time.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newTriggerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Ask the backend to recompute both models for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := models.ParseDate(triggerDate)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ack, err := newClient(cfg).TriggerDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&triggerDate, "date", "", "day to recompute (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newPerformanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "performance",
		Short: "Print the rolling yield and error table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			perf, err := newClient(cfg).GetModelPerformance(cmd.Context())
			if err != nil {
				return err
			}
			today := models.DateOf(time.Now())
			return performanceTable(perf, perfDays, today).render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&perfDays, "days", performance.Window, "number of trailing days")
	return cmd
}

// performanceTable lists the trailing window. Error columns are only filled
// for settled days.
func performanceTable(perf *models.PerformanceBundle, days int, today models.Date) *textTable {
	window := performance.LastN(perf.TableData, days)
	errs := make(map[models.Date]performance.ErrorDay)
	for _, e := range performance.Errors(performance.HistoricalOnly(window, today)) {
		errs[e.Date] = e
	}

	t := &textTable{headers: []string{"Date", "Actual", "LSTM", "LGBM", "Acc LSTM", "Acc LGBM", "Err LSTM", "Err LGBM"}}
	for _, d := range window {
		errLSTM, errLGBM := "-", "-"
		if e, ok := errs[d.Date]; ok {
			errLSTM = fmt.Sprintf("%.1f%%", e.ErrorLSTM)
			errLGBM = fmt.Sprintf("%.1f%%", e.ErrorLGBM)
		}
		t.rows = append(t.rows, []string{
			d.Date.String(),
			fmt.Sprintf("%.2f", d.Actual),
			fmt.Sprintf("%.2f", d.LSTM),
			fmt.Sprintf("%.2f", d.LGBM),
			fmt.Sprintf("%.1f%%", d.AccuracyLSTM),
			fmt.Sprintf("%.1f%%", d.AccuracyLGBM),
			errLSTM,
			errLGBM,
		})
	}
	return t
}

func newFetchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetches",
		Short: "Print the most recent backend calls from the fetch journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo, err := journal.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer repo.Close()

			records, err := repo.RecentFetches(cmd.Context(), fetchesLimit)
			if err != nil {
				return err
			}
			return fetchesTable(records).render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&fetchesLimit, "limit", journal.DefaultLimit, "number of records")
	return cmd
}

func fetchesTable(records []models.FetchRecord) *textTable {
	t := &textTable{headers: []string{"Started", "Session", "Seq", "Endpoint", "Status", "Duration", "Error"}}
	for _, r := range records {
		session := r.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		if r.HTTPStatus != 0 {
			status += " " + strconv.Itoa(r.HTTPStatus)
		}
		t.rows = append(t.rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			session,
			strconv.FormatUint(r.Seq, 10),
			r.Endpoint,
			status,
			r.Duration.String(),
			r.Error,
		})
	}
	return t
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			t := &textTable{headers: []string{"Setting", "Value"}}
			t.rows = [][]string{
				{"config file", configPath},
				{"backend.url", cfg.APIURL},
				{"backend.timeout", cfg.Timeout.String()},
				{"weather.interval", cfg.WeatherInterval.String()},
				{"storage.path", cfg.DBPath},
				{"log.file", cfg.LogFile},
				{"metrics.addr", orDash(cfg.MetricsAddr)},
			}
			return t.render(cmd.OutOrStdout())
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
