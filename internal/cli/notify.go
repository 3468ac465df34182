package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prayerwatch/prayerwatch/internal/notify"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

// notifySettingKeys lists the keys accepted by `notify set`.
var notifySettingKeys = []string{"enabled", "prayer", "jamaat", "before_prayer", "before_jamaat"}

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or configure reminder notifications",
		Long:  "Display the notification settings, or use subcommands to modify them.\nWhen run without subcommands, shows the current settings.",
		RunE:  runNotifyShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a notification setting",
		Long: fmt.Sprintf("Change a notification setting. Valid keys: %s\n\n"+
			"Examples:\n"+
			"  prayerwatch notify set enabled true\n"+
			"  prayerwatch notify set prayer true\n"+
			"  prayerwatch notify set before_jamaat 10",
			strings.Join(notifySettingKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runNotifySet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test desktop notification",
		RunE:  runNotifyTest,
	})

	return cmd
}

func runNotifyShow(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := st.NotificationSettings(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("  %-14s %t\n", "enabled", settings.Enabled)
	fmt.Printf("  %-14s %t (%d min before)\n", "prayer", settings.PrayerNotification, settings.BeforePrayerMinutes)
	fmt.Printf("  %-14s %t (%d min before)\n", "jamaat", settings.JamaatNotification, settings.BeforeJamaatMinutes)
	return nil
}

func runNotifySet(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := st.NotificationSettings(ctx)
	if err != nil {
		return err
	}

	if err := applyNotifySetting(&settings, args[0], args[1]); err != nil {
		return err
	}

	if err := st.SetNotificationSettings(ctx, settings); err != nil {
		return err
	}
	// Invalidate the scheduling marker so the daemon rebuilds alarms.
	if err := st.SetLastScheduledDate(ctx, ""); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

// applyNotifySetting parses and applies one `notify set` key/value pair.
func applyNotifySetting(settings *store.NotificationSettings, key, value string) error {
	switch key {
	case "enabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for enabled: must be true or false", value)
		}
		settings.Enabled = v
	case "prayer":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for prayer: must be true or false", value)
		}
		settings.PrayerNotification = v
	case "jamaat":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for jamaat: must be true or false", value)
		}
		settings.JamaatNotification = v
	case "before_prayer":
		v, err := parseLeadMinutes(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for before_prayer: %w", value, err)
		}
		settings.BeforePrayerMinutes = v
	case "before_jamaat":
		v, err := parseLeadMinutes(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for before_jamaat: %w", value, err)
		}
		settings.BeforeJamaatMinutes = v
	default:
		return fmt.Errorf("unknown setting %q; valid keys: %s", key, strings.Join(notifySettingKeys, ", "))
	}
	return nil
}

func parseLeadMinutes(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if v < 0 || v > 120 {
		return 0, fmt.Errorf("must be between 0 and 120 minutes")
	}
	return v, nil
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	n := notify.New()
	id := fmt.Sprintf("test_%s", uuid.NewString())
	if err := n.Send(id, "Prayerwatch", "Test notification"); err != nil {
		return fmt.Errorf("send test notification: %w", err)
	}
	fmt.Println("Test notification sent.")
	return nil
}
