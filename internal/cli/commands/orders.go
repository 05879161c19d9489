package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"PartnerApp/internal/cli/bootstrap"
	"PartnerApp/internal/cli/model"
	"PartnerApp/internal/config"
)

type ordersCmd struct{}

func (ordersCmd) Name() string        { return "orders" }
func (ordersCmd) Description() string { return "List orders offered to the partner" }
func (ordersCmd) Usage() string       { return "orders [--status pending|accepted|rejected|delivered]" }

func (ordersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		list, err := app.Orders.List(ctx, *status)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "No orders")
			return nil
		}
		for _, o := range list {
			printOrder(o)
		}
		fmt.Fprintf(Out, "Total: %d\n", len(list))
		return nil
	})
}

type acceptCmd struct{}

func (acceptCmd) Name() string        { return "accept" }
func (acceptCmd) Description() string { return "Accept an order" }
func (acceptCmd) Usage() string       { return "accept <order-id>" }

func (acceptCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		o, err := app.Orders.Accept(ctx, args[0])
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	})
}

type rejectCmd struct{}

func (rejectCmd) Name() string        { return "reject" }
func (rejectCmd) Description() string { return "Reject an order" }
func (rejectCmd) Usage() string       { return "reject <order-id> [reason...]" }

func (rejectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	reason := strings.Join(args[1:], " ")
	return withApp(cfg, func(app *bootstrap.App) error {
		o, err := app.Orders.Reject(ctx, args[0], reason)
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	})
}

func printOrder(o model.Order) {
	fmt.Fprintf(Out, "- %s  %-9s  %.1f km  %.2f  %s -> %s\n",
		o.ID, o.Status, o.DistanceKm, o.Amount, o.PickupAddress, o.DropAddress)
}

func init() {
	RegisterCmd(ordersCmd{})
	RegisterCmd(acceptCmd{})
	RegisterCmd(rejectCmd{})
}
