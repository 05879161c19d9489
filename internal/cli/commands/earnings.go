package commands

import (
	"context"
	"fmt"
	"strconv"

	"PartnerApp/internal/cli/bootstrap"
	"PartnerApp/internal/config"
)

type earningsCmd struct{}

func (earningsCmd) Name() string        { return "earnings" }
func (earningsCmd) Description() string { return "Show earnings, transactions or incentives" }
func (earningsCmd) Usage() string {
	return "earnings [today|week|month] | earnings transactions [page] [limit] | earnings incentives"
}

func (earningsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	sub := "today"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "today", "week", "month":
		if len(args) > 1 {
			return ErrUsage
		}
		return withApp(cfg, func(app *bootstrap.App) error {
			s, err := app.Earnings.Summary(ctx, sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(Out, "Period:     %s\n", s.Period)
			fmt.Fprintf(Out, "Earnings:   %.2f %s\n", s.TotalEarnings, s.Currency)
			fmt.Fprintf(Out, "Orders:     %d\n", s.OrdersCompleted)
			fmt.Fprintf(Out, "Incentives: %.2f %s\n", s.Incentives, s.Currency)
			return nil
		})

	case "transactions":
		if len(args) > 3 {
			return ErrUsage
		}
		page, limit := 1, 20
		var err error
		if len(args) > 1 {
			if page, err = strconv.Atoi(args[1]); err != nil {
				return ErrUsage
			}
		}
		if len(args) > 2 {
			if limit, err = strconv.Atoi(args[2]); err != nil {
				return ErrUsage
			}
		}
		return withApp(cfg, func(app *bootstrap.App) error {
			res, err := app.Earnings.Transactions(ctx, page, limit)
			if err != nil {
				return err
			}
			if len(res.Transactions) == 0 {
				fmt.Fprintln(Out, "No transactions")
				return nil
			}
			for _, tx := range res.Transactions {
				fmt.Fprintf(Out, "- %s  %-9s  %.2f  %s\n", tx.CreatedAt.Format("2006-01-02 15:04"), tx.Type, tx.Amount, tx.Description)
			}
			fmt.Fprintf(Out, "Page %d, %d of %d\n", res.Page, len(res.Transactions), res.Total)
			return nil
		})

	case "incentives":
		if len(args) > 1 {
			return ErrUsage
		}
		return withApp(cfg, func(app *bootstrap.App) error {
			list, err := app.Earnings.Incentives(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(Out, "No active incentives")
				return nil
			}
			for _, in := range list {
				fmt.Fprintf(Out, "- %s  %d/%d  reward %.2f\n", in.Title, in.Progress, in.Target, in.Reward)
			}
			return nil
		})
	}
	return ErrUsage
}

func init() { RegisterCmd(earningsCmd{}) }
