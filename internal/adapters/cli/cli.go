package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoice-discounting/internal/app"
	"invoice-discounting/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "quote", "q":
		if len(args) < 5 {
			log.Fatal("Usage: app quote <invoice-value> <term-days> <credit-score> <annual-revenue>")
		}
		in := core.PricingInput{
			InvoiceValue:    mustDecimal(args[1], "invoice-value"),
			PaymentTermDays: mustInt(args[2], "term-days"),
			CreditScore:     mustInt(args[3], "credit-score"),
			AnnualRevenue:   mustDecimal(args[4], "annual-revenue"),
		}
		result, err := svc.QuotePricing(ctx, in)
		if err != nil {
			log.Fatalf("Quote failed: %v", err)
		}
		if result.Insufficient {
			fmt.Fprintln(os.Stderr, "Insufficient data for a quote.")
			os.Exit(1)
		}
		printQuote(result.Pricing)

	case "score", "s":
		if len(args) < 3 {
			log.Fatal("Usage: app score <credit-score> <annual-revenue> [contract-value] [registration-number]")
		}
		in := core.RiskInput{
			CreditScore:   mustInt(args[1], "credit-score"),
			AnnualRevenue: mustDecimal(args[2], "annual-revenue"),
		}
		if len(args) > 3 {
			in.ContractValue = mustDecimal(args[3], "contract-value")
		}
		if len(args) > 4 {
			in.RegistrationNumber = args[4]
		}
		assessment, err := svc.ScoreRisk(ctx, in)
		if err != nil {
			log.Fatalf("Score failed: %v", err)
		}
		printScore(assessment)

	case "contracts":
		result, err := svc.ListContracts(ctx)
		if err != nil {
			log.Fatalf("Failed to list contracts: %v", err)
		}
		printContracts(result)

	case "invoices":
		result, err := svc.ListInvoices(ctx)
		if err != nil {
			log.Fatalf("Failed to list invoices: %v", err)
		}
		printInvoices(result)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: quote, score, contracts, invoices", args[0])
	}
}

func mustDecimal(s, name string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", name, s, err)
	}
	return d
}

func mustInt(s, name string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", name, s, err)
	}
	return n
}

func printQuote(p core.PricingResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 54))
	fmt.Printf("  %-50s\n", "DISCOUNTING QUOTE")
	fmt.Println(strings.Repeat("=", 54))
	fmt.Printf("  %-28s %20s%%\n", "Discount rate (annual)", p.DiscountRate.StringFixed(2))
	fmt.Printf("  %-28s %20s%%\n", "Advance percent", p.AdvancePercent.StringFixed(0))
	fmt.Printf("  %-28s %21s\n", "Advance amount", p.AdvanceAmount.StringFixed(2))
	fmt.Printf("  %-28s %21s\n", "Discount amount", p.DiscountAmount.StringFixed(2))
	fmt.Printf("  %-28s %21s\n", "Processing fee", p.ProcessingFee.StringFixed(2))
	fmt.Println(strings.Repeat("-", 54))
	fmt.Printf("  %-28s %21s\n", "Net to seller", p.NetAmount.StringFixed(2))
	fmt.Printf("  %-28s %20s%%\n", "Effective annual rate", p.EffectiveAnnualRate.StringFixed(2))
	fmt.Printf("  %-28s %21s\n", "Risk band", p.Band)
	fmt.Println(strings.Repeat("=", 54))
}

func printScore(a *core.RiskAssessment) {
	fmt.Println()
	fmt.Printf("  Score        : %d / 100\n", a.Score)
	fmt.Printf("  Base         : %d\n", a.Base)
	fmt.Printf("  Credit       : +%d\n", a.CreditBonus)
	fmt.Printf("  Ratio        : +%d\n", a.RatioBonus)
	fmt.Printf("  Duration     : +%d\n", a.DurationBonus)
	fmt.Printf("  Rate         : +%d\n", a.RateBonus)
	fmt.Printf("  Registration : +%d\n", a.RegistrationBonus)
}

func printContracts(result *app.ContractListResult) {
	fmt.Println()
	fmt.Printf("  %-38s %-26s %-22s %12s\n", "ID", "TITLE", "STATUS", "VALUE")
	fmt.Println(strings.Repeat("-", 102))
	for _, c := range result.Contracts {
		fmt.Printf("  %-38s %-26s %-22s %12s\n", c.ID, truncate(c.Title, 26), c.Status, c.Value.StringFixed(2))
	}
}

func printInvoices(result *app.InvoiceListResult) {
	fmt.Println()
	fmt.Printf("  %-12s %-38s %-24s %12s\n", "NUMBER", "ID", "STATUS", "TOTAL")
	fmt.Println(strings.Repeat("-", 90))
	for _, inv := range result.Invoices {
		fmt.Printf("  %-12s %-38s %-24s %12s\n", inv.Number, inv.ID, inv.Status, inv.Total.StringFixed(2))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
