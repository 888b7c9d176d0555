// cmd/sales-cli/registry.go
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"sales-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd(root *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "file", "configs/activity-registry.json", "activity registry path")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			return listActivities(cmd.OutOrStdout(), root, reg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the registry for duplicate ids, bad timeouts and broken schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			return validateRegistry(cmd.OutOrStdout(), root, reg)
		},
	})

	cmd.AddCommand(newRegistryAddCmd(root, &path), newRegistryUpdateCmd(root, &path))

	return cmd
}

func newRegistryAddCmd(root *rootOptions, path *string) *cobra.Command {
	a := registry.Activity{}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a planned activity",
		Example: `  sales-cli registry add --id data.alias.forget --task-type forget-alias --category data-access --name "Forget Alias"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addActivity(cmd.OutOrStdout(), root, *path, a, time.Now())
		},
	}

	cmd.Flags().StringVar(&a.ID, "id", "", "activity id (domain.subdomain.action)")
	cmd.Flags().StringVar(&a.TaskType, "task-type", "", "Zeebe task type")
	cmd.Flags().StringVar(&a.Category, "category", "sales", "worker category")
	cmd.Flags().StringVar(&a.DisplayName, "name", "", "display name")
	cmd.Flags().StringVar(&a.Description, "description", "", "description")
	cmd.Flags().StringVar(&a.Version, "version", "1.0.0", "activity version")
	cmd.Flags().StringVar(&a.Timeout, "timeout", "5s", "job timeout")
	cmd.Flags().IntVar(&a.Retries, "retries", 3, "job retries")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("task-type")

	return cmd
}

func newRegistryUpdateCmd(root *rootOptions, path *string) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <field> <value>",
		Short:   "Change a single field of an activity",
		Example: `  sales-cli registry update data.alias.forget status implemented`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return err
			}
			if err := reg.SetField(args[0], args[1], args[2], time.Now()); err != nil {
				return err
			}
			if err := registry.Save(reg, *path); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout(), root).Success("updated %s: %s = %s", args[0], args[1], args[2])
			return nil
		},
	}
}

// addActivity creates the registry file when it does not exist yet.
func addActivity(out io.Writer, root *rootOptions, path string, a registry.Activity, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	if a.DisplayName == "" {
		a.DisplayName = a.ID
	}
	a.ImplementationStatus = registry.StatusPlanned
	if err := reg.Add(a, now); err != nil {
		return err
	}
	if err := registry.Save(reg, path); err != nil {
		return err
	}
	newPrinter(out, root).Success("added %s (%s)", a.ID, a.TaskType)
	return nil
}

func listActivities(out io.Writer, root *rootOptions, reg *registry.ActivityRegistry) error {
	activities := reg.Sorted()
	if root.jsonMode {
		return newPrinter(out, root).JSON(activities)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK TYPE\tSTATUS\tTIMEOUT")
	for _, a := range activities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.ImplementationStatus, a.Timeout)
	}
	return w.Flush()
}

func validateRegistry(out io.Writer, root *rootOptions, reg *registry.ActivityRegistry) error {
	p := newPrinter(out, root)
	problems := reg.Validate()
	if len(problems) == 0 {
		p.Success("registry %s is valid (%d activities)", reg.Version, len(reg.Activities))
		return nil
	}
	for _, problem := range problems {
		p.Failure("%v", problem)
	}
	return fmt.Errorf("registry has %d problem(s)", len(problems))
}
