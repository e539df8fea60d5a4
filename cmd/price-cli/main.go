package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal"
	logger_adapter "github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/logger"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/configs"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/usecase"
)

var (
	name    = "price-cli"
	version = "1.0.0"
)

type predictCmd struct {
	Location  string  `arg:"-l,--location,required" help:"locality name, case-insensitive"`
	TotalSqft float64 `arg:"-s,--sqft,required" help:"total built-up area in square feet"`
	Bedrooms  int     `arg:"-b,--bhk" default:"2" help:"number of bedrooms"`
	Bathrooms int     `arg:"--bath" default:"2" help:"number of bathrooms"`
	Balconies int     `arg:"--balcony" default:"1" help:"number of balconies"`
	JSON      bool    `arg:"--json" help:"print the full result as JSON"`
}

type locationsCmd struct {
	JSON bool `arg:"--json" help:"print system and display names as JSON"`
}

type args struct {
	Predict   *predictCmd   `arg:"subcommand:predict" help:"predict the price of a property"`
	Locations *locationsCmd `arg:"subcommand:locations" help:"list the known locations"`
	Env       string        `arg:"--env" help:"path to a .env file" default:".env"`
	Verbose   bool          `arg:"-v,--verbose" help:"log progress to stderr"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", name, version)
}

func (args) Description() string {
	return "Pune house price predictor, running the model in-process.\n"
}

// exitRejected is returned for queries the encoder refuses.
const exitRejected = 2

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand: predict or locations")
	}

	if err := run(context.Background(), a, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		if errors.Is(err, domain.ErrUnknownLocation) || errors.Is(err, domain.ErrOutOfRange) {
			os.Exit(exitRejected)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, a args, stdout, stderr io.Writer) error {
	cfg, err := configs.LoadConfig(a.Env)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if a.Verbose {
		level = slog.LevelDebug
	}
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: stderr, Level: level})

	predictor, err := internal.LoadPredictor(ctx, cfg.Artifacts, logger)
	if err != nil {
		return err
	}

	switch {
	case a.Predict != nil:
		return runPredict(ctx, a.Predict, cfg, predictor, stdout)
	case a.Locations != nil:
		return runLocations(ctx, a.Locations, predictor, stdout)
	}
	return nil
}

func runPredict(ctx context.Context, cmd *predictCmd, cfg *configs.AppConfig, predictor *internal.Predictor, out io.Writer) error {
	uc, err := usecase.NewPredictPriceUseCase(predictor.Schema, predictor.Model, cfg.Bounds, cfg.PriceFormat, nil, nil)
	if err != nil {
		return err
	}
	result, err := uc.Execute(ctx, domain.PropertyQuery{
		Location:  cmd.Location,
		TotalSqft: cmd.TotalSqft,
		Bedrooms:  cmd.Bedrooms,
		Bathrooms: cmd.Bathrooms,
		Balconies: cmd.Balconies,
	})
	if err != nil {
		return err
	}

	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprintln(out, result.Formatted)
	return err
}

func runLocations(ctx context.Context, cmd *locationsCmd, predictor *internal.Predictor, out io.Writer) error {
	items := usecase.NewGetLocationsUseCase(predictor.Schema).Execute(ctx)
	if cmd.JSON {
		return json.NewEncoder(out).Encode(items)
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", it.SystemName, it.DisplayName); err != nil {
			return err
		}
	}
	return nil
}
