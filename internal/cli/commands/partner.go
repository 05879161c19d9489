package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"PartnerApp/internal/cli/bootstrap"
	"PartnerApp/internal/cli/model"
	"PartnerApp/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show profile or go online/offline" }
func (statusCmd) Usage() string       { return "status [online|offline]" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	var online *bool
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "online":
			v := true
			online = &v
		case "offline":
			v := false
			online = &v
		default:
			return ErrUsage
		}
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		var (
			p   *model.Partner
			err error
		)
		if online == nil {
			p, err = app.Partner.Profile(ctx)
		} else {
			p, err = app.Partner.UpdateStatus(ctx, *online)
		}
		if err != nil {
			return err
		}
		printPartner(p)
		return nil
	})
}

type locationCmd struct{}

func (locationCmd) Name() string        { return "location" }
func (locationCmd) Description() string { return "Report the current location" }
func (locationCmd) Usage() string       { return "location <latitude> <longitude>" }

func (locationCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	lat, err1 := strconv.ParseFloat(args[0], 64)
	lng, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		if err := app.Partner.UpdateLocation(ctx, lat, lng); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Location updated")
		return nil
	})
}

type documentsCmd struct{}

func (documentsCmd) Name() string        { return "documents" }
func (documentsCmd) Description() string { return "Submit onboarding documents" }
func (documentsCmd) Usage() string       { return "documents <type>:<number>[:<url>] ..." }

func (documentsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	docs := make([]model.Document, 0, len(args))
	for _, a := range args {
		parts := strings.SplitN(a, ":", 3)
		if len(parts) < 2 {
			return ErrUsage
		}
		d := model.Document{Type: parts[0], Number: parts[1]}
		if len(parts) == 3 {
			d.URL = parts[2]
		}
		docs = append(docs, d)
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		p, err := app.Partner.SubmitDocuments(ctx, docs)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Documents submitted: %d\n", len(docs))
		printPartner(p)
		return nil
	})
}

type bankCmd struct{}

func (bankCmd) Name() string        { return "bank" }
func (bankCmd) Description() string { return "Submit payout bank details" }
func (bankCmd) Usage() string       { return "bank <holder> <account-number> <ifsc> [bank name]" }

func (bankCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	bd := model.BankDetails{AccountHolder: args[0], AccountNumber: args[1], IFSC: strings.ToUpper(args[2])}
	if len(args) > 3 {
		bd.BankName = strings.Join(args[3:], " ")
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		p, err := app.Partner.SubmitBankDetails(ctx, bd)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Bank details saved")
		printPartner(p)
		return nil
	})
}

type trainingCmd struct{}

func (trainingCmd) Name() string        { return "training" }
func (trainingCmd) Description() string { return "Mark a training module as completed" }
func (trainingCmd) Usage() string       { return "training <module-id>" }

func (trainingCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		p, err := app.Partner.CompleteTraining(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Training completed")
		printPartner(p)
		return nil
	})
}

func printPartner(p *model.Partner) {
	state := "offline"
	if p.IsOnline {
		state = "online"
	}
	fmt.Fprintf(Out, "Partner:    %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(Out, "Status:     %s\n", state)
	if p.OnboardingStatus != "" {
		fmt.Fprintf(Out, "Onboarding: %s\n", p.OnboardingStatus)
	}
}

func init() {
	RegisterCmd(statusCmd{})
	RegisterCmd(locationCmd{})
	RegisterCmd(documentsCmd{})
	RegisterCmd(bankCmd{})
	RegisterCmd(trainingCmd{})
}
