// Command ingest runs the price-list engine against a local workbook and
// prints the extracted records as JSON. Useful for checking a vendor file
// before wiring it into the upload flow.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pricesheet/backend/internal/infrastructure/xlsx"
	"github.com/pricesheet/backend/internal/usecase"
)

var (
	flagCompany  string
	flagCurrency string
	flagPretty   bool
	flagDebug    bool
)

func main() {
	root := &cobra.Command{
		Use:   "pricesheet-ingest <file.xlsx>",
		Short: "Extract product records from a vendor price list",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().StringVar(&flagCompany, "company", "", "company/source label for the records")
	root.Flags().StringVar(&flagCurrency, "default-currency", "TRY", "currency assumed when the sheet names none")
	root.Flags().BoolVar(&flagPretty, "pretty", false, "indent the JSON output")
	root.Flags().BoolVar(&flagDebug, "debug", false, "verbose extraction logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	// Engine logs go to stderr only when asked for; stdout stays pure JSON.
	if !flagDebug {
		log.SetOutput(io.Discard)
	}

	service := usecase.NewIngestService(xlsx.NewReader(flagDebug), usecase.IngestServiceConfig{
		DefaultCurrency:    flagCurrency,
		DefaultCompany:     flagCompany,
		EnableDebugLogging: flagDebug,
	})

	records, err := service.Ingest(context.Background(), data, flagCompany)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if flagPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}
