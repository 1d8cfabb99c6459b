package output

import (
	"fmt"
	"strings"

	"github.com/goldsim/gold-simulator/internal/analysis"
	"github.com/goldsim/gold-simulator/internal/simulation"
	"github.com/goldsim/gold-simulator/pkg/decimal"
)

// ConsoleFormatter renders a human-readable text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("GOLD PURCHASE PLAN SIMULATION\n")
	b.WriteString("=============================\n\n")

	fmt.Fprintf(&b, "Generated:       %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Initial price:   %s/g\n", decimal.NewMoneyFromDecimal(report.InitialPrice).Format())
	fmt.Fprintf(&b, "Buy price:       %s/g\n", decimal.NewMoneyFromDecimal(report.Plan.BuyPrice).Format())
	fmt.Fprintf(&b, "Sell price:      %s/g\n", decimal.NewMoneyFromDecimal(report.Plan.SellPrice).Format())
	fmt.Fprintf(&b, "Spread:          %.2f%%\n", report.Plan.Spread().InexactFloat64()*100)
	fmt.Fprintf(&b, "Monthly amount:  %s g (+%s g bonus per year)\n",
		report.Plan.MonthlyQuantity, report.Plan.BonusQuantityPerYear)
	fmt.Fprintf(&b, "Return model:    mean %.4f, std %.4f per month\n",
		report.ReturnModel.MeanMonthlyReturn, report.ReturnModel.StdMonthlyReturn)
	fmt.Fprintf(&b, "Inflation:       %.2f%% per year\n\n", report.InflationRate*100)

	for _, h := range report.Horizons {
		fmt.Fprintf(&b, "HORIZON %d MONTHS (%d trials)\n", h.HorizonMonths, h.TrialCount)
		b.WriteString(strings.Repeat("-", 40) + "\n")

		c.writeSummary(&b, "Nominal", h.Summary)
		c.writeSummary(&b, "Inflation-adjusted", h.RealSummary)

		for _, r := range h.Risk {
			fmt.Fprintf(&b, "  Risk (%.0f%% confidence):\n", r.ConfidenceLevel*100)
			fmt.Fprintf(&b, "    VaR %.4f  CVaR %.4f  Sharpe %.3f\n", r.VaR, r.CVaR, r.SharpeRatio)
			fmt.Fprintf(&b, "    Worst ROI %.4f  Downside dev %.4f  P(loss) %.2f%%\n",
				r.MaxDrawdown, r.DownsideDeviation, r.ProbabilityOfLoss*100)
		}

		b.WriteString("  Scenarios (by market ROI):\n")
		for _, s := range h.Scenarios {
			fmt.Fprintf(&b, "    p%-2d  ROI %7.4f  value %s  invested %s\n",
				s.Percentile, s.Trial.ROI.InexactFloat64(),
				decimal.NewMoneyFromDecimal(s.Trial.MarketValue).Format(),
				decimal.NewMoneyFromDecimal(s.Trial.TotalInvested).Format())
		}

		b.WriteString("  Price sensitivity (median ROI):\n")
		for _, p := range h.Sensitivity {
			fmt.Fprintf(&b, "    x%.1f  %7.4f\n", p.Multiplier, p.MedianROI)
		}

		fmt.Fprintf(&b, "  Bonus impact: +%.4f mean ROI (+%.4f median) from %.0f g bonus\n\n",
			h.Bonus.MeanROIDelta, h.Bonus.MedianROIDelta, h.Bonus.BonusQuantity)
	}

	return []byte(b.String()), nil
}

func (c ConsoleFormatter) writeSummary(b *strings.Builder, label string, summary simulation.SummaryStatistics) {
	roi := summary[simulation.MetricROI]
	value := summary[simulation.MetricMarketValue]
	annual := summary[simulation.MetricAnnualizedReturn]

	fmt.Fprintf(b, "  %s:\n", label)
	fmt.Fprintf(b, "    Market value:  median %s  (p5 %s, p95 %s)\n",
		decimal.NewMoney(value.Median).Format(),
		decimal.NewMoney(value.P5).Format(),
		decimal.NewMoney(value.P95).Format())
	fmt.Fprintf(b, "    ROI:           median %.4f  mean %.4f  std %.4f\n", roi.Median, roi.Mean, roi.StdDev)
	fmt.Fprintf(b, "    Annualized:    median %.4f  (p5 %.4f, p95 %.4f)\n", annual.Median, annual.P5, annual.P95)
}
