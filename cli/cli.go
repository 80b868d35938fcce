package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"weatherapp/manager"
)

func New(app *manager.App, defaultUnit manager.Unit) (*cobra.Command, error) {
	var unitFlag string

	cmd := &cobra.Command{
		Use:   "weather [location]",
		Short: "CLI application for getting current weather and a short forecast",
		Long: "Looks up current conditions and the next forecast entries for a location.\n" +
			"Without a location an interactive session starts: type a location per line,\n" +
			"':metric' or ':imperial' to switch units, ':history' to list past searches,\n" +
			"':again <id>' to repeat a listed search and ':quit' to leave.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := defaultUnit
			if cmd.Flags().Changed("unit") {
				var err error
				if unit, err = manager.ParseUnit(unitFlag); err != nil {
					return err
				}
			}

			if provider := app.Provider(); provider != "" {
				cmd.Printf("PROVIDER\t %s\n", provider)
			}

			first, second := app.Theme().Gradient()
			cmd.Printf("THEME\t\t %s (%s -> %s)\n", app.Theme(), first, second)

			if len(args) > 0 {
				search(cmd, app, strings.Join(args, " "), unit)
				return nil
			}

			return session(cmd, app, unit)
		},
	}

	cmd.Flags().StringVarP(&unitFlag, "unit", "u", defaultUnit.String(), "unit system: metric or imperial")

	return cmd, nil
}

func session(cmd *cobra.Command, app *manager.App, unit manager.Unit) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())

	cmd.Printf("UNIT\t\t %s\n> ", unit)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if ref, ok := strings.CutPrefix(line, ":again"); ok {
			again(cmd, app, ref, unit)
			cmd.Printf("> ")
			continue
		}

		switch line {
		case ":quit", ":q":
			return nil
		case ":metric":
			unit = manager.Metric
			cmd.Printf("UNIT\t\t %s\n", unit)
		case ":imperial":
			unit = manager.Imperial
			cmd.Printf("UNIT\t\t %s\n", unit)
		case ":history":
			printHistory(cmd, app.History())
		default:
			search(cmd, app, line, unit)
			printHistory(cmd, app.History())
		}

		cmd.Printf("> ")
	}

	return scanner.Err()
}

func search(cmd *cobra.Command, app *manager.App, location string, unit manager.Unit) {
	result, err := app.Search(cmd.Context(), location, unit)
	if err != nil {
		printNotification(cmd, manager.ValidationNotification())
		return
	}

	printResult(cmd, result, unit)
}

func again(cmd *cobra.Command, app *manager.App, ref string, unit manager.Unit) {
	result, err := app.Repeat(cmd.Context(), ref, unit)
	if err != nil {
		printNotification(cmd, manager.Notification{Title: "History Error", Message: err.Error()})
		return
	}

	printResult(cmd, result, unit)
	printHistory(cmd, app.History())
}

func printResult(cmd *cobra.Command, result manager.SearchResult, unit manager.Unit) {
	cmd.Printf("LOCATION\t %s\n", result.Query.Name)

	if result.CurrentErr == nil {
		for _, line := range manager.FormatCurrent(result.Current, unit) {
			cmd.Printf("\t\t %s\n", line)
		}
		cmd.Printf("ICON\t\t %s\n", result.Current.IconURL)
	}

	if result.ForecastErr == nil {
		cmd.Printf("FORECAST\n")
		for _, line := range result.Forecast {
			cmd.Printf("\t\t %s\n", line)
		}
	}

	for _, notification := range result.Notifications() {
		printNotification(cmd, notification)
	}
}

func printHistory(cmd *cobra.Command, history *manager.History) {
	cmd.Printf("HISTORY\n")
	for _, record := range history.Records() {
		cmd.Printf("\t%s %s\n", record.ShortID(), record)
	}
}

func printNotification(cmd *cobra.Command, n manager.Notification) {
	cmd.PrintErrf("%s: %s\n", strings.ToUpper(n.Title), n.Message)
}
