package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Recognize a local image against enrolled employees",
	Long: `Loads the gallery of enrolled employees from the database, runs one
recognition session on the image and prints the match result as JSON.
Nothing is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	payload, err := readCapture(args[0])
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	recognizer, err := face.NewRecognizer(cfg, repository.NewEmployeeRepository(pool), logger)
	if err != nil {
		return err
	}

	result, err := recognizer.NewSession().Recognize(ctx, payload)
	if err != nil {
		return fmt.Errorf("identify %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
