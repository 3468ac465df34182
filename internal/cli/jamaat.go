package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/display"
	"github.com/prayerwatch/prayerwatch/internal/fetch"
	"github.com/prayerwatch/prayerwatch/internal/jamaat"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

var flagMosqueAddress string

func newJamaatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jamaat",
		Short: "Show or configure Jamaat times",
		Long:  "Display the derived Jamaat (congregation) times, or configure the per-prayer offsets and the selected mosque.",
		RunE:  runJamaatShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's Jamaat times",
		RunE:  runJamaatShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <prayer> <minutes|HH:MM>",
		Short: "Set a Jamaat offset",
		Long: "Set the minutes between a prayer's Adhan and its Jamaat.\n" +
			"The value is either plain minutes, or a clock time (HH:MM) from which\n" +
			"the offset is derived against today's prayer time.\n\n" +
			"Examples:\n" +
			"  prayerwatch jamaat set fajr 20\n" +
			"  prayerwatch jamaat set isha 20:45",
		Args: cobra.ExactArgs(2),
		RunE: runJamaatSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default Jamaat offsets",
		RunE:  runJamaatReset,
	})

	cmd.AddCommand(newMosqueCmd())

	return cmd
}

func newMosqueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mosque",
		Short: "Show or select the mosque for Jamaat reminders",
		RunE:  runMosqueShow,
	}

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Select a mosque by name",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMosqueSet,
	}
	setCmd.Flags().StringVar(&flagMosqueAddress, "address", "", "Mosque address")
	cmd.AddCommand(setCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the mosque selection",
		RunE:  runMosqueClear,
	})

	return cmd
}

func runJamaatShow(cmd *cobra.Command, args []string) error {
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

	offsets, err := st.JamaatOffsets(ctx)
	if err != nil {
		offsets = jamaat.DefaultOffsets()
	}
	jamaatTimes := jamaat.ComputeTimes(day.Times, offsets)

	mosque, err := st.SelectedMosque(ctx)
	if err != nil {
		mosque = nil
	}

	fmt.Println()
	if mosque != nil {
		fmt.Printf("  Mosque: %s\n", display.Bold(mosque.Name))
		if mosque.Address != "" {
			fmt.Printf("  %s\n", display.Gray(mosque.Address))
		}
	} else {
		fmt.Printf("  Mosque: %s\n", display.Dim("(none selected)"))
	}
	fmt.Println()

	table := display.NewTable([]string{"Prayer", "Adhan", "Offset", "Jamaat"})
	for _, name := range prayer.NotifiableNames {
		offset := ""
		if v, ok := offsets[name]; ok {
			offset = fmt.Sprintf("+%dm", v)
		}
		table.AddRow([]string{
			name,
			formatClock(day.Times[name], cfg.TimeFormat),
			offset,
			formatClock(jamaatTimes[name], cfg.TimeFormat),
		})
	}
	fmt.Print(table.Render())
	fmt.Println()
	return nil
}

func runJamaatSet(cmd *cobra.Command, args []string) error {
	name, err := canonicalPrayer(args[0])
	if err != nil {
		return err
	}

	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var offset int
	if v, convErr := strconv.Atoi(args[1]); convErr == nil {
		offset = jamaat.Clamp(v)
	} else if strings.Contains(args[1], ":") {
		// Clock time: derive the offset from today's prayer time.
		day, err := fetch.New(st).EnsureDayTimes(ctx, cfg)
		if err != nil {
			return err
		}
		raw, ok := day.Times[name]
		if !ok {
			return fmt.Errorf("no %s time available today to derive the offset from", name)
		}
		offset, err = jamaat.TimeToOffset(raw, args[1])
		if err != nil {
			return err
		}
	} else {
		return fmt.Errorf("invalid value %q: expected minutes or HH:MM", args[1])
	}

	offsets, err := st.JamaatOffsets(ctx)
	if err != nil {
		offsets = jamaat.DefaultOffsets()
	}
	offsets[name] = offset
	if err := st.SetJamaatOffsets(ctx, offsets); err != nil {
		return err
	}
	// Invalidate the scheduling marker so the daemon rebuilds alarms.
	if err := st.SetLastScheduledDate(ctx, ""); err != nil {
		return err
	}

	fmt.Printf("Set %s Jamaat offset to %d minutes.\n", name, offset)
	return nil
}

func runJamaatReset(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SetJamaatOffsets(ctx, jamaat.DefaultOffsets()); err != nil {
		return err
	}
	if err := st.SetLastScheduledDate(ctx, ""); err != nil {
		return err
	}

	fmt.Println("Jamaat offsets restored to defaults.")
	return nil
}

func runMosqueShow(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	mosque, err := st.SelectedMosque(cmd.Context())
	if err != nil {
		return err
	}
	if mosque == nil {
		fmt.Println("No mosque selected.")
		return nil
	}

	fmt.Printf("%s\n", mosque.Name)
	if mosque.Address != "" {
		fmt.Printf("%s\n", mosque.Address)
	}
	return nil
}

func runMosqueSet(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	mosque := store.Mosque{
		ID:      uuid.NewString(),
		Name:    strings.Join(args, " "),
		Address: flagMosqueAddress,
	}
	if err := st.SetSelectedMosque(ctx, mosque); err != nil {
		return err
	}
	if err := st.SetLastScheduledDate(ctx, ""); err != nil {
		return err
	}

	fmt.Printf("Selected mosque: %s\n", mosque.Name)
	return nil
}

func runMosqueClear(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ClearSelectedMosque(ctx); err != nil {
		return err
	}
	if err := st.SetLastScheduledDate(ctx, ""); err != nil {
		return err
	}

	fmt.Println("Mosque selection cleared.")
	return nil
}
