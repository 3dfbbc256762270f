package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sm8ta/hospital_frontend/internal/app"
	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

func (c *CLI) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open PATH",
		Short: "Navigate to a page, as the address bar would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				route, err := a.Router.Navigate(ctx, args[0])
				if err != nil {
					return errors.Wrapf(err, "failed to open %s", args[0])
				}
				printRoute(cmd, route.Path, route.Title)
				return showView(ctx, cmd.OutOrStdout(), a, route)
			})
		},
	}
}

// showView loads what the page displays. Pages without data print nothing.
func showView(ctx context.Context, out io.Writer, a *app.App, route domain.Route) error {
	switch route.View {
	case "AdminDashboard":
		stats, err := a.API.AdminStats(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load stats")
		}
		doctors, err := a.API.ListDoctors(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load doctors")
		}
		printStats(out, stats)
		printDoctors(out, doctors)
	case "DoctorDashboard":
		raw, err := a.API.DoctorDashboard(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load dashboard")
		}
		return printJSON(out, raw)
	case "PatientDashboard":
		raw, err := a.API.PatientDashboard(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load dashboard")
		}
		return printJSON(out, raw)
	}
	return nil
}

func printStats(out io.Writer, s *domain.DashboardStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Patients\t%d\n", s.TotalPatients)
	fmt.Fprintf(w, "Doctors\t%d\n", s.TotalDoctors)
	fmt.Fprintf(w, "Appointments\t%d\n", s.TotalAppointments)
	fmt.Fprintf(w, "Upcoming\t%d\n", s.UpcomingAppointments)
	fmt.Fprintf(w, "Completed\t%d\n", s.CompletedAppointments)
	w.Flush()
}

func printDoctors(out io.Writer, doctors []domain.Doctor) {
	if len(doctors) == 0 {
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tNAME\tSPECIALIZATION\tAVAILABILITY")
	for _, d := range doctors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.Name, d.Specialization, d.Availability)
	}
	w.Flush()
}

func printJSON(out io.Writer, raw json.RawMessage) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return errors.Wrap(err, "failed to decode dashboard")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to format dashboard")
	}
	fmt.Fprintln(out, string(data))
	return nil
}
