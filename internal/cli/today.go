package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/clock"
	"github.com/prayerwatch/prayerwatch/internal/display"
	"github.com/prayerwatch/prayerwatch/internal/fetch"
	"github.com/prayerwatch/prayerwatch/internal/jamaat"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

func runToday(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	day, err := fetch.New(st).EnsureDayTimes(ctx, cfg)
	if err != nil {
		return err
	}

	now := localNow(day.Timezone)

	win, ok := prayer.ResolveWindow(now, day.Times)

	offsets, err := st.JamaatOffsets(ctx)
	if err != nil {
		offsets = jamaat.DefaultOffsets()
	}
	jamaatTimes := jamaat.ComputeTimes(day.Times, offsets)
	warning := prayer.EvaluateProhibited(now, day.Times)

	if FlagJSON {
		return printTodayJSON(day, jamaatTimes, win, ok, now, warning, cfg.TimeFormat)
	}

	printTodayRich(day, jamaatTimes, win, ok, now, warning, cfg.TimeFormat)
	return nil
}

// localNow re-anchors the wall clock to the schedule's timezone, so
// window and prohibition checks line up with the fetched times.
func localNow(tz string) time.Time {
	now := time.Now()
	if tz == "" {
		return now
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return now
	}
	return now.In(loc)
}

// printTodayRich renders the colored terminal output for today's schedule.
func printTodayRich(day *store.CachedTimes, jamaatTimes prayer.TimeSet, win prayer.Window, ok bool, now time.Time, warning, timeFormat string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Prayer Times"))
	fmt.Println()

	fmt.Printf("  %s\n", now.Format("02 Jan 2006"))
	if day.HijriDate != "" {
		fmt.Printf("  %s\n", day.HijriDate)
	}
	if day.Timezone != "" {
		fmt.Printf("  %s\n", display.Gray(day.Timezone))
	}
	fmt.Println()

	table := display.NewTable([]string{"Prayer", "Adhan", "Jamaat"})
	for i, name := range prayer.Order {
		row := []string{name, formatClock(day.Times[name], timeFormat), ""}
		if jt, has := jamaatTimes[name]; has {
			row[2] = formatClock(jt, timeFormat)
		}
		table.AddRow(row)
		if ok && name == win.Current {
			table.SetHighlightRow(i)
		}
	}
	fmt.Print(table.Render())
	fmt.Println()

	if ok {
		remaining := prayer.FormatRemaining(win.NextTime.Sub(now))
		fmt.Printf("  Next: %s at %s (in %s)\n",
			display.Accent(win.NextName),
			formatClock(day.Times[win.NextName], timeFormat),
			remaining)
	}

	if warning != "" {
		fmt.Printf("  %s\n", display.WarnBanner(warning))
	}
	fmt.Println()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Date     string            `json:"date"`
	Hijri    string            `json:"hijri,omitempty"`
	Timezone string            `json:"timezone,omitempty"`
	Timings  map[string]string `json:"timings"`
	Jamaat   map[string]string `json:"jamaat"`
	Current  string            `json:"current,omitempty"`
	Next     *nextJSON         `json:"next,omitempty"`
	Warning  string            `json:"warning,omitempty"`
}

type nextJSON struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func printTodayJSON(day *store.CachedTimes, jamaatTimes prayer.TimeSet, win prayer.Window, ok bool, now time.Time, warning, timeFormat string) error {
	out := todayJSON{
		Date:     day.Date,
		Hijri:    day.HijriDate,
		Timezone: day.Timezone,
		Timings:  lowerKeyed(day.Times, timeFormat),
		Jamaat:   lowerKeyed(jamaatTimes, timeFormat),
		Warning:  warning,
	}

	if ok {
		out.Current = strings.ToLower(win.Current)
		out.Next = &nextJSON{
			Prayer:    strings.ToLower(win.NextName),
			Time:      formatClock(day.Times[win.NextName], timeFormat),
			Remaining: prayer.FormatRemaining(win.NextTime.Sub(now)),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func lowerKeyed(times prayer.TimeSet, timeFormat string) map[string]string {
	out := make(map[string]string, len(times))
	for name, raw := range times {
		out[strings.ToLower(name)] = formatClock(raw, timeFormat)
	}
	return out
}

// formatClock renders a stored HH:MM value in the configured time
// format. Unparseable values pass through untouched.
func formatClock(raw, timeFormat string) string {
	c, err := clock.Parse(raw)
	if err != nil {
		return raw
	}
	if timeFormat == "12h" {
		return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("3:04 PM")
	}
	return c.String()
}

// canonicalPrayer maps user input onto a notifiable prayer name.
func canonicalPrayer(s string) (string, error) {
	for _, name := range prayer.NotifiableNames {
		if strings.EqualFold(s, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q (expected one of: %s)", s, strings.Join(prayer.NotifiableNames, ", "))
}
