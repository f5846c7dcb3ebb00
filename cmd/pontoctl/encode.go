package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the stored-encoding JSON of a local image",
	Long: `Runs the image through the configured extractor and prints the face
encoding exactly as it would be stored in employees.face_encoding.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}

	payload, err := readCapture(args[0])
	if err != nil {
		return err
	}

	recognizer, err := face.NewRecognizer(cfg, nil, newLogger(cfg))
	if err != nil {
		return err
	}

	embedding, err := recognizer.NewSession().Embed(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", args[0], err)
	}

	encoded, err := codec.SerializeEmbedding(embedding)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return nil
}

// readCapture loads an image file as a base64 capture payload.
func readCapture(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
