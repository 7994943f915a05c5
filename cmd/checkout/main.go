package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"

	"toolrental-charges/internal/app"
	"toolrental-charges/internal/config"
	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/logger"
	"toolrental-charges/internal/service"
	"toolrental-charges/internal/utils"
)

const separator = "================================================"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to configuration file (optional)")
	toolCode := fs.String("tool", "LADW", "Tool code")
	days := fs.Int("days", 5, "Rental day count")
	discount := fs.String("discount", "10", "Discount percent (0-100)")
	checkout := fs.String("date", "", "Checkout date, YYYY-MM-DD or MM/DD/YY (default today)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Agreement goes to stdout, logs to stderr
	logger.InitializeWithWriter(stderr, cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	svc, closeCache, err := app.NewAgreementService(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeCache()

	if err := printCatalog(ctx, stdout, svc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	rental, err := parseRequest(*toolCode, *days, *discount, *checkout)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, separator)
	fmt.Fprintln(stdout, "Rental Agreement")
	fmt.Fprintln(stdout, "----------------")
	agreement, err := svc.Calculate(ctx, rental.ToolCode, rental.RentalDays, rental.DiscountPercent, rental.CheckoutDate)
	if err != nil {
		if invalid := domain.IsInvalidArgumentError(err); invalid != nil {
			fmt.Fprintf(stdout, "Error: %s\n", invalid.Message)
		} else {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		fmt.Fprintln(stdout, separator)
		return 1
	}
	fmt.Fprintln(stdout, agreement.String())
	fmt.Fprintln(stdout, separator)
	return 0
}

// parseRequest turns flag values into a rental request; an empty date means today
func parseRequest(toolCode string, days int, discount, checkout string) (domain.RentalRequest, error) {
	pct, err := decimal.NewFromString(discount)
	if err != nil {
		return domain.RentalRequest{}, fmt.Errorf("invalid discount percent %q", discount)
	}

	checkoutDate := time.Now()
	if checkout != "" {
		checkoutDate, err = utils.ParseCheckoutDate(checkout)
		if err != nil {
			return domain.RentalRequest{}, err
		}
	}

	return domain.RentalRequest{
		ToolCode:        toolCode,
		RentalDays:      days,
		DiscountPercent: pct,
		CheckoutDate:    checkoutDate,
	}, nil
}

func printCatalog(ctx context.Context, w io.Writer, svc service.AgreementService) error {
	listings, err := svc.ListCatalog(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, separator)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Tool Code\tTool Type\tBrand")
	fmt.Fprintln(tw, "---------\t---------\t-----")
	for _, l := range listings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Code, l.ToolType, l.Brand)
	}
	return tw.Flush()
}
