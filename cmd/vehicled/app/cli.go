package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/adapter"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/parse"
)

// Status categories accepted by `vehicled status`.
var statusCategories = []string{"basic", "full", "all", "physical", "energy", "climate", "maintenance", "position"}

// cliAdapter builds an adapter for one-shot commands. Only warnings are
// logged unless --log-level says otherwise.
func cliAdapter(opts *Options) (*adapter.VehicleAdapter, *zap.Logger, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, nil, err
	}
	if opts.LogLevel == "" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.Format = "console"

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	a, err := newAdapter(cfg, logger)
	return a, logger, err
}

func newVehiclesCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "List the vehicles of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := cliAdapter(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			vehicles, err := a.ListVehicles(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 40
			table.AddRow("VIN", "NAME", "MODEL", "PLATE")
			for _, v := range vehicles {
				table.AddRow(v.VIN, orDash(v.Name), orDash(v.Model), orDash(v.LicensePlate))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func newStatusCommand(opts *Options) *cobra.Command {
	var components string
	cmd := &cobra.Command{
		Use:   "status <vehicle> [" + strings.Join(statusCategories, "|") + "]",
		Short: "Print one status category of a vehicle as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "basic"
			if len(args) == 2 {
				category = args[1]
			}

			a, logger, err := cliAdapter(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			record, err := readStatus(cmd, a, args[0], category, components)
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no %s data for vehicle %s", category, args[0])
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().StringVar(&components, "components", "", "Physical components to include, e.g. doors,windows.")
	return cmd
}

// readStatus returns nil when the vehicle is unknown or has no data for the
// category.
func readStatus(cmd *cobra.Command, a adapter.Adapter, id, category, components string) (any, error) {
	ctx := cmd.Context()
	switch category {
	case "basic", "full", "all":
		return nilable(a.GetVehicle(ctx, id, adapter.DetailLevel(category)))
	case "physical":
		list, err := parse.Components(components)
		if err != nil {
			return nil, err
		}
		return nilable(a.GetPhysicalStatus(ctx, id, list...))
	case "energy":
		return nilable(a.GetEnergyStatus(ctx, id))
	case "climate":
		return nilable(a.GetClimateStatus(ctx, id))
	case "maintenance":
		return nilable(a.GetMaintenanceInfo(ctx, id))
	case "position":
		return nilable(a.GetPosition(ctx, id))
	}
	return nil, fmt.Errorf("unknown category %q, expected one of %s", category, strings.Join(statusCategories, ", "))
}

// nilable turns a typed nil pointer into an untyped nil.
func nilable[T any](record *T, err error) (any, error) {
	if err != nil || record == nil {
		return nil, err
	}
	return record, nil
}

func newCommandCommand(opts *Options) *cobra.Command {
	var pairs []string
	cmd := &cobra.Command{
		Use:   "command <vehicle> <command>",
		Short: "Send a remote command and print the result",
		Example: "  vehicled command ID7 lock_vehicle\n" +
			"  vehicled command T7 start_climatization --param target_temperature=21.5",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parse.Params(pairs)
			if err != nil {
				return err
			}

			a, logger, err := cliAdapter(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			result := a.Execute(cmd.Context(), args[0], adapter.CommandName(args[1]), params)
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%s: %s", result.Code, result.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "Command parameter as key=value, repeatable.")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
