// backend-go/cmd/forecast/main.go
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prasetyowira/stockcast/backend-go/internal/cache"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/prasetyowira/stockcast/backend-go/internal/forecast"
	"github.com/prasetyowira/stockcast/backend-go/internal/reorder"
	"github.com/prasetyowira/stockcast/backend-go/internal/repository/postgres"
	"github.com/prasetyowira/stockcast/backend-go/internal/service"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newWarehouseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "warehouse-id",
		Usage: "Restrict to one warehouse",
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.NewDBFromURL("pgx", c.String("db-url"))
	if err != nil {
		return err
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *postgres.DB {
	db, _ := c.Context.Value(dbKey).(*postgres.DB)
	return db
}

func forecastServiceFrom(c *cli.Context) *service.ForecastService {
	db := dbFrom(c)
	return service.NewForecastService(
		postgres.NewDemandRepository(db),
		postgres.NewCatalogRepository(db),
		cache.NewNoopForecastCache(),
	)
}

func reorderServiceFrom(c *cli.Context) *service.ReorderService {
	db := dbFrom(c)
	return service.NewReorderService(
		postgres.NewDemandRepository(db),
		postgres.NewCatalogRepository(db),
		postgres.NewRuleRepository(db),
		postgres.NewPORepository(db),
		nil,
		service.ReorderServiceConfig{},
	)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "forecast",
		Usage: "Run demand forecasts and reorder planning from the command line",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Compute forecasts for one product, or every product in the catalog",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newWarehouseFlag(),
					&cli.StringFlag{
						Name:  "product-id",
						Usage: "Single product to forecast; omit to forecast the whole catalog",
					},
					&cli.StringFlag{
						Name:  "algorithm",
						Usage: "Forecast algorithm (sma, exponential, linear, seasonal, hybrid)",
						Value: "hybrid",
					},
					&cli.IntFlag{
						Name:  "periods",
						Usage: "Number of days to forecast",
						Value: forecast.DefaultPeriods,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runForecast,
			},
			{
				Name:  "suggest",
				Usage: "Print the current reorder suggestions, most urgent first",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newWarehouseFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: runSuggest,
			},
			{
				Name:  "consolidate",
				Usage: "Consolidate reorder suggestions into draft purchase orders",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newWarehouseFlag(),
					&cli.StringFlag{
						Name:  "shortfall-policy",
						Usage: "What to do with orders below supplier minimums: drop or top_up",
						Value: "drop",
					},
					&cli.BoolFlag{
						Name:  "persist",
						Usage: "Save generated drafts to the database",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runConsolidate,
			},
			{
				Name:  "load-demand",
				Usage: "Load demand history from a CSV file (date,product_id,warehouse_id,quantity,revenue)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file to load",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: loadDemand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runForecast(c *cli.Context) error {
	algorithm, err := forecast.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}

	settings := forecast.DefaultSettings()
	settings.Algorithm = algorithm
	if periods := c.Int("periods"); periods > 0 {
		settings.Periods = periods
	}

	svc := forecastServiceFrom(c)
	warehouseID := c.String("warehouse-id")

	if productID := c.String("product-id"); productID != "" {
		result, err := svc.GetForecast(c.Context, productID, warehouseID, settings)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Forecast    *domain.Forecast             `json:"forecast"`
			Comparisons []domain.AlgorithmComparison `json:"comparisons,omitempty"`
		}{result.Forecast, result.Comparisons})
	}

	catalogRepo := postgres.NewCatalogRepository(dbFrom(c))
	products, err := catalogRepo.ListProducts(c.Context, "", 200, 0)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no products in catalog")
	}

	productIDs := make([]string, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	start := time.Now()
	forecasts, err := svc.BatchForecast(c.Context, productIDs, warehouseID, settings)
	if err != nil {
		return err
	}
	log.Printf("Computed %d forecasts in %v", len(forecasts), time.Since(start))

	return printJSON(forecasts)
}

func runSuggest(c *cli.Context) error {
	suggestions, err := reorderServiceFrom(c).GetSuggestions(c.Context, c.String("warehouse-id"))
	if err != nil {
		return err
	}
	return printJSON(suggestions)
}

func runConsolidate(c *cli.Context) error {
	policy := reorder.DropBelowMinimum
	switch strings.ToLower(c.String("shortfall-policy")) {
	case "drop":
	case "top_up":
		policy = reorder.TopUpToMinimum
	default:
		return fmt.Errorf("shortfall-policy must be 'drop' or 'top_up'")
	}

	drafts, err := reorderServiceFrom(c).Consolidate(c.Context, c.String("warehouse-id"), policy, c.Bool("persist"))
	if err != nil {
		return err
	}
	return printJSON(drafts)
}

func loadDemand(c *cli.Context) error {
	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	db := dbFrom(c)
	reader := csv.NewReader(f)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	inserted := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < 5 {
			return fmt.Errorf("record %d: expected 5 columns, got %d", inserted+1, len(record))
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			return fmt.Errorf("record %d: invalid date %q: %w", inserted+1, record[0], err)
		}
		quantity, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return fmt.Errorf("record %d: invalid quantity %q: %w", inserted+1, record[3], err)
		}
		revenue, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return fmt.Errorf("record %d: invalid revenue %q: %w", inserted+1, record[4], err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO demand_history (sale_date, product_id, warehouse_id, quantity, revenue)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sale_date, product_id, warehouse_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, revenue = EXCLUDED.revenue
		`, date, record[1], record[2], quantity, revenue)
		if err != nil {
			return fmt.Errorf("record %d: insert failed: %w", inserted+1, err)
		}
		inserted++
	}

	log.Printf("Loaded %d demand records from %s", inserted, path)
	return nil
}
