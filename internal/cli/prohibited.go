package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/display"
	"github.com/prayerwatch/prayerwatch/internal/fetch"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
)

func newProhibitedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prohibited",
		Short: "Show today's prohibited prayer times",
		Long:  "Display the three daily intervals during which voluntary prayer is prohibited, and whether one is in effect right now.",
		RunE:  runProhibited,
	}
}

func runProhibited(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	day, err := fetch.New(st).EnsureDayTimes(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	now := localNow(day.Timezone)
	windows := prayer.ProhibitedWindows(now, day.Times)
	if windows == nil {
		return fmt.Errorf("missing Sunrise, Dhuhr or Maghrib time; cannot derive prohibited windows")
	}

	fmt.Println()
	table := display.NewTable([]string{"Window", "From", "Until"})
	for i, w := range windows {
		table.AddRow([]string{
			w.Name,
			formatClock(w.Start.Format("15:04"), cfg.TimeFormat),
			formatClock(w.End.Format("15:04"), cfg.TimeFormat),
		})
		if !now.Before(w.Start) && now.Before(w.End) {
			table.SetHighlightRow(i)
		}
	}
	fmt.Print(table.Render())
	fmt.Println()

	if warning := prayer.EvaluateProhibited(now, day.Times); warning != "" {
		fmt.Printf("  %s\n", display.WarnBanner(warning))
	} else {
		fmt.Printf("  %s\n", display.Green("No prohibition in effect."))
	}
	fmt.Println()
	return nil
}
