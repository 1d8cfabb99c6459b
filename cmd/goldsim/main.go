package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goldsim/gold-simulator/internal/analysis"
	"github.com/goldsim/gold-simulator/internal/config"
	"github.com/goldsim/gold-simulator/internal/marketdata"
	"github.com/goldsim/gold-simulator/internal/output"
	"github.com/goldsim/gold-simulator/internal/server"
	"github.com/goldsim/gold-simulator/internal/simulation"
)

var (
	inputFile    string
	outputFormat string
	trialsFlag   int
	seedFlag     int64
	verbose      bool

	servePort     string
	fetchMonths   int
	fetchOutFile  string
	fetchSpotOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "goldsim",
	Short: "Monte Carlo simulator for recurring gold purchase plans",
	Long: `goldsim estimates the distribution of outcomes for a recurring
gold-purchase subscription plan under uncertain future gold prices:
monthly purchases, annual bonus gold, stochastic price evolution,
multi-horizon statistics and risk analysis.`,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation described by a configuration file",
	RunE:  runSimulate,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file without running anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", inputFile)
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewInputParser().CreateExampleConfiguration()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(inputFile, data, 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", inputFile)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the spot price, or generate a synthetic history CSV",
	RunE:  runFetch,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP simulation service",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		version := "dev"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
		fmt.Printf("goldsim %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "config", "c", "goldsim.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose engine logging")

	simulateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (overrides config)")
	simulateCmd.Flags().IntVar(&trialsFlag, "trials", 0, "trial count (overrides config)")
	simulateCmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed for reproducible runs")

	fetchCmd.Flags().IntVar(&fetchMonths, "months", 120, "months of synthetic history to generate")
	fetchCmd.Flags().StringVarP(&fetchOutFile, "out", "o", "gold_history.csv", "CSV file to write")
	fetchCmd.Flags().BoolVar(&fetchSpotOnly, "spot", false, "only print the current spot price")
	fetchCmd.Flags().Int64Var(&seedFlag, "seed", 0, "seed for the synthetic series")

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "listen port")

	rootCmd.AddCommand(simulateCmd, validateCmd, exampleCmd, fetchCmd, serveCmd, versionCmd)
}

// cliLogger adapts the engine logger interface to plain stderr output.
type cliLogger struct {
	debug bool
}

func (l cliLogger) Debugf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(os.Stderr, "DEBUG "+format+"\n", args...)
	}
}
func (l cliLogger) Infof(format string, args ...any)  { fmt.Fprintf(os.Stderr, "INFO  "+format+"\n", args...) }
func (l cliLogger) Warnf(format string, args ...any)  { fmt.Fprintf(os.Stderr, "WARN  "+format+"\n", args...) }
func (l cliLogger) Errorf(format string, args ...any) { fmt.Fprintf(os.Stderr, "ERROR "+format+"\n", args...) }

func runSimulate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	if trialsFlag > 0 {
		cfg.Simulation.TrialCount = trialsFlag
	}
	if seedFlag != 0 {
		cfg.Simulation.Seed = seedFlag
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}

	model := cfg.Market.ReturnModel()
	if cfg.Market.HistoryCSV != "" {
		history, err := marketdata.LoadCSV(cfg.Market.HistoryCSV)
		if err != nil {
			return fmt.Errorf("failed to load price history: %w", err)
		}
		model, err = history.DeriveReturnModel()
		if err != nil {
			return fmt.Errorf("failed to derive return model: %w", err)
		}
	}

	sim := simulation.NewSimulator(simulation.SimulatorConfig{
		TrialCount: cfg.Simulation.TrialCount,
		Seed:       cfg.Simulation.Seed,
		PriceBand:  cfg.Simulation.PriceBand,
		Logger:     cliLogger{debug: verbose},
	})

	horizons, err := sim.RunHorizons(cfg.Simulation.Horizons, cfg.Market.InitialPrice, model, cfg.Plan)
	if err != nil {
		return err
	}

	report, err := analysis.BuildReport(horizons, cfg.Market.InitialPrice, cfg.Plan, model, analysis.Options{
		InflationRate:    cfg.Simulation.InflationRate,
		PriceMultipliers: cfg.Simulation.PriceMultipliers,
		ConfidenceLevels: cfg.Simulation.ConfidenceLevels,
	})
	if err != nil {
		return err
	}

	filename, err := output.GenerateReport(report, cfg.Output.Format)
	if err != nil {
		return err
	}
	fmt.Printf("report written to %s\n", filename)
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	client := marketdata.NewSpotClient()
	price, err := client.CurrentPrice(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN  spot fetch failed (%v), using fallback price\n", err)
		price = marketdata.FallbackPrice
	}
	fmt.Printf("spot price: %s EUR/g\n", price.StringFixed(2))

	if fetchSpotOnly {
		return nil
	}

	seed := seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	history := marketdata.GenerateSyntheticHistory(fetchMonths, price.InexactFloat64(), uint64(seed))
	if err := history.SaveCSV(fetchOutFile); err != nil {
		return err
	}
	fmt.Printf("wrote %d months of history to %s\n", fetchMonths, fetchOutFile)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	srv := server.New(log, marketdata.NewSpotClient())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx, ":"+servePort)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
