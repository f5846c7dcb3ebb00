package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show enrollment and gallery status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	employees := repository.NewEmployeeRepository(pool)

	recognizer, err := face.NewRecognizer(cfg, employees, logger)
	if err != nil {
		return err
	}

	status, err := service.NewEmployeeService(employees, recognizer, logger).TrainingStatus(ctx)
	if err != nil {
		return err
	}

	printStatus(cmd, status)
	return nil
}

func printStatus(cmd *cobra.Command, s *domain.EnrollmentStatus) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEES\tENROLLED\tNOT ENROLLED\tLOADABLE\tCORRUPT")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", s.TotalEmployees, s.Enrolled, s.NotEnrolled, s.Loadable, s.Corrupt)
	w.Flush()
}
