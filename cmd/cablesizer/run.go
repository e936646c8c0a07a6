package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/fieldworks/cablesizer/internal/domain"
	"github.com/fieldworks/cablesizer/internal/platform/config"
	"github.com/fieldworks/cablesizer/internal/platform/observability"
	"github.com/fieldworks/cablesizer/internal/platform/requestctx"
	"github.com/fieldworks/cablesizer/internal/services"
)

type sizeResponse struct {
	RunID string `json:"run_id"`
	domain.CableSizerOutput
}

func runSize(inputPath, format, envFile string) error {
	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := observability.NewCLILogger(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	input, err := decodeSizingInput(inputPath)
	if err != nil {
		return err
	}

	sizer, err := services.NewCableSizer(services.CableSizerDeps{
		Defaults: services.SizingDefaults{
			VDropPercent:        cfg.Engine.DefaultVDropPercent,
			FaultAtLoadFraction: cfg.Engine.FaultAtLoadFraction,
			DisconnectionTimeS:  cfg.Engine.DisconnectionTimeS,
		},
		Logger: engineLogAdapter,
	})
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	runID := ulid.Make().String()
	ctx := requestctx.WithRunID(context.Background(), runID)
	ctx = observability.WithLogger(ctx, logger.Named("cablesizer").With(zap.String("run_id", runID)))

	result, err := sizer.SizeCable(ctx, services.SizeCableCommand{Input: input})
	if err != nil {
		if errors.Is(err, services.ErrNoSuitableSize) {
			return fmt.Errorf("run %s: %w", runID, err)
		}
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sizeResponse{RunID: runID, CableSizerOutput: result.Output})
	case "text":
		printSizingReport(os.Stdout, runID, result.Output)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func decodeSizingInput(path string) (domain.CableSizerInput, error) {
	var reader io.Reader = os.Stdin
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return domain.CableSizerInput{}, fmt.Errorf("opening sizing request: %w", err)
		}
		defer file.Close()
		reader = file
	}

	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()

	var input domain.CableSizerInput
	if err := dec.Decode(&input); err != nil {
		return domain.CableSizerInput{}, fmt.Errorf("decoding sizing request: %w", err)
	}
	return input, nil
}

// engineLogAdapter bridges the engine's logger callback onto the zap logger
// carried by the run context.
func engineLogAdapter(ctx context.Context, event string, fields map[string]any) {
	logger := requestctx.Logger(ctx)
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	logger.Info(event, zapFields...)
}
