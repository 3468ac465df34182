package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/fetch"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
)

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer event with a countdown.\nOutput is a single line, suitable for status bars.",
		RunE:  runNext,
	}
}

func runNext(cmd *cobra.Command, args []string) error {
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
	win, ok := prayer.ResolveWindow(now, day.Times)
	if !ok {
		return fmt.Errorf("no usable prayer times for today")
	}

	remaining := prayer.FormatRemaining(win.NextTime.Sub(now))
	timeStr := formatClock(day.Times[win.NextName], cfg.TimeFormat)

	if FlagJSON {
		out := struct {
			Current string `json:"current"`
			Next    string `json:"next"`
			Time    string `json:"time"`
			In      string `json:"in"`
		}{
			Current: strings.ToLower(win.Current),
			Next:    strings.ToLower(win.NextName),
			Time:    timeStr,
			In:      remaining,
		}
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s %s (%s)\n", win.NextName, timeStr, remaining)
	return nil
}
