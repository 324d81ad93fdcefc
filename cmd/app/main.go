package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop/cmd"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/order"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "app",
		Short:        "Decoration pricing and order workflow service",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and background jobs",
			RunE:  runServe,
		},
		newQuoteCmd(),
		&cobra.Command{
			Use:   "catalog",
			Short: "Print the workflow status catalog as JSON",
			RunE: func(c *cobra.Command, _ []string) error {
				return printJSON(c.OutOrStdout(), order.Catalog())
			},
		},
	)
	return root
}

func newLogger(cfg cmd.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	app, err := cmd.NewCompositionRoot(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close resources", "error", closeErr)
		}
	}()

	e, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newQuoteCmd() *cobra.Command {
	var params decoration.RequestParams
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one decoration request and print the result as JSON",
		Example: "  app quote --method screen-printing --qty 100 --colors 2 --location front-center\n" +
			"  app quote --method embroidery --qty 24 --location front-left-chest --rush",
		RunE: func(c *cobra.Command, _ []string) error {
			if params.Quantity <= 0 {
				return printJSON(c.OutOrStdout(), nil)
			}

			cfg, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}
			app, err := cmd.NewCompositionRoot(cfg, newLogger(cfg, c.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer app.Close()

			request, err := decoration.NewRequest(params)
			if err != nil {
				return err
			}
			query, err := queries.NewCalculatePricingQuery(request)
			if err != nil {
				return err
			}
			result, err := app.CreateCalculatePricingQueryHandler().Handle(c.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), result)
		},
	}

	flags := quoteCmd.Flags()
	flags.StringVar(&params.Method, "method", "screen-printing", "decoration method as shown in the UI")
	flags.IntVar(&params.Quantity, "qty", 0, "number of garments")
	flags.IntVar(&params.ColorCount, "colors", 1, "ink or thread colors")
	flags.StringSliceVar(&params.Locations, "location", []string{"front-center"}, "print location, repeatable")
	flags.StringVar(&params.GarmentType, "garment", "", "light, dark or poly")
	flags.StringVar(&params.CustomerType, "customer", "", "new or repeat")
	flags.BoolVar(&params.Rush, "rush", false, "rush order")
	flags.BoolVar(&params.SetupNew, "setup-new", false, "new screens or digitizing needed")
	return quoteCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
