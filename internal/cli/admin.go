package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sm8ta/hospital_frontend/internal/adapter/ui/modals"
	"github.com/sm8ta/hospital_frontend/internal/app"
	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

func (c *CLI) doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Manage doctors (Admin)",
	}
	cmd.AddCommand(c.doctorCreateCmd())
	cmd.AddCommand(c.doctorUpdateCmd())
	cmd.AddCommand(c.deleteCmd(domain.DoctorEntity))
	cmd.AddCommand(c.blacklistCmd(domain.DoctorEntity))
	return cmd
}

func (c *CLI) patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patients (Admin)",
	}
	cmd.AddCommand(c.patientUpdateCmd())
	cmd.AddCommand(c.deleteCmd(domain.PatientEntity))
	cmd.AddCommand(c.blacklistCmd(domain.PatientEntity))
	return cmd
}

func (c *CLI) doctorCreateCmd() *cobra.Command {
	var name, specialization, availability string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				m := modals.NewCreateDoctorModal(a.API, a.Validate, a.Logger)
				defer m.Close()
				m.SetName(name)
				m.SetSpecialization(specialization)
				m.SetAvailability(availability)

				created, err := m.Submit(ctx)
				if err != nil {
					return errors.New(messageOr(m.ErrorMessage(), err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", m.SuccessMessage(), created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "doctor name")
	cmd.Flags().StringVar(&specialization, "specialization", "", "specialization")
	cmd.Flags().StringVar(&availability, "availability", "", "availability, e.g. Mon-Fri 9AM-5PM")
	return cmd
}

func (c *CLI) doctorUpdateCmd() *cobra.Command {
	var name, specialization, availability, contact string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				doctor, err := findDoctor(ctx, a, id)
				if err != nil {
					return err
				}

				m := modals.NewEditDoctorModal(*doctor, a.API, a.Validate, a.Logger)
				defer m.Close()
				flags := cmd.Flags()
				if flags.Changed("name") {
					m.SetName(name)
				}
				if flags.Changed("specialization") {
					m.SetSpecialization(specialization)
				}
				if flags.Changed("availability") {
					m.SetAvailability(availability)
				}
				if flags.Changed("contact") {
					m.SetContactInfo(contact)
				}

				if _, err := m.Submit(ctx); err != nil {
					return errors.New(messageOr(m.ErrorMessage(), err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.SuccessMessage())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "doctor name")
	cmd.Flags().StringVar(&specialization, "specialization", "", "specialization")
	cmd.Flags().StringVar(&availability, "availability", "", "availability")
	cmd.Flags().StringVar(&contact, "contact", "", "contact info")
	return cmd
}

func (c *CLI) patientUpdateCmd() *cobra.Command {
	var name, contact, gender string
	var age int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				patient, err := findPatient(ctx, a, id)
				if err != nil {
					return err
				}

				m := modals.NewEditPatientModal(*patient, a.API, a.Validate, a.Logger)
				defer m.Close()
				flags := cmd.Flags()
				if flags.Changed("name") {
					m.SetName(name)
				}
				if flags.Changed("contact") {
					m.SetContactInfo(contact)
				}
				if flags.Changed("age") {
					m.SetAge(age)
				}
				if flags.Changed("gender") {
					m.SetGender(gender)
				}

				if _, err := m.Submit(ctx); err != nil {
					return errors.New(messageOr(m.ErrorMessage(), err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.SuccessMessage())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "patient name")
	cmd.Flags().StringVar(&contact, "contact", "", "contact info")
	cmd.Flags().IntVar(&age, "age", 0, "age")
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	return cmd
}

func (c *CLI) deleteCmd(kind domain.EntityKind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				entity := c.entity(ctx, a, kind, id)
				m := modals.NewDeleteConfirmationModal(kind, entity, a.API, a.Logger)
				defer m.Close()

				if !yes {
					answer, err := c.readLine(cmd, m.Prompt()+" [y/N] ")
					if err != nil {
						return err
					}
					if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
						return nil
					}
				}

				if err := m.Confirm(ctx); err != nil {
					return errors.New(messageOr(m.ErrorMessage(), err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.SuccessMessage())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *CLI) blacklistCmd(kind domain.EntityKind) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "blacklist ID",
		Short: fmt.Sprintf("Blacklist a %s so they cannot log in", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				m := modals.NewBlacklistModal(kind, c.entity(ctx, a, kind, id), a.API, a.Logger)
				defer m.Close()
				m.SetReason(reason)

				if err := m.Submit(ctx); err != nil {
					return errors.New(messageOr(m.ErrorMessage(), err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.SuccessMessage())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the account is blacklisted")
	return cmd
}

// entity names the target of a confirmation. A failed lookup falls back to
// the id.
func (c *CLI) entity(ctx context.Context, a *app.App, kind domain.EntityKind, id int64) domain.Entity {
	fallback := domain.Entity{ID: id, Name: fmt.Sprintf("%s #%d", kind, id)}
	switch kind {
	case domain.DoctorEntity:
		if doctor, err := findDoctor(ctx, a, id); err == nil {
			return domain.Entity{ID: id, Name: doctor.Name}
		}
	case domain.PatientEntity:
		if patient, err := findPatient(ctx, a, id); err == nil {
			return domain.Entity{ID: id, Name: patient.Name}
		}
	}
	return fallback
}

func findDoctor(ctx context.Context, a *app.App, id int64) (*domain.Doctor, error) {
	doctors, err := a.API.ListDoctors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load doctors")
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, errors.Errorf("doctor %d not found", id)
}

func findPatient(ctx context.Context, a *app.App, id int64) (*domain.Patient, error) {
	patients, err := a.API.ListPatients(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load patients")
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, errors.Errorf("patient %d not found", id)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return id, nil
}
