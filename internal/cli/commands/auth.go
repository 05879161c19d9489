package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"PartnerApp/internal/cli/bootstrap"
	"PartnerApp/internal/cli/model"
	"PartnerApp/internal/config"
)

type sendOTPCmd struct{}

func (sendOTPCmd) Name() string        { return "send-otp" }
func (sendOTPCmd) Description() string { return "Send a one-time code to the phone" }
func (sendOTPCmd) Usage() string       { return "send-otp <phone>" }

func (sendOTPCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		res, err := app.Auth.SendOTP(ctx, args[0])
		if err != nil {
			return err
		}
		msg := res.Message
		if msg == "" {
			msg = "OTP sent"
		}
		fmt.Fprintln(Out, msg)
		return nil
	})
}

type verifyOTPCmd struct{}

func (verifyOTPCmd) Name() string        { return "verify-otp" }
func (verifyOTPCmd) Description() string { return "Verify the code and start a session" }
func (verifyOTPCmd) Usage() string       { return "verify-otp <phone> <code>" }

func (verifyOTPCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		res, err := app.Auth.VerifyOTP(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printWelcome(res)
		return nil
	})
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login with phone and password" }
func (loginCmd) Usage() string       { return "login <phone> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		res, err := app.Auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printWelcome(res)
		return nil
	})
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new delivery partner" }
func (registerCmd) Usage() string {
	return "register [--vehicle bike] [--city <city>] <name> <phone> <password>"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	vehicle := fs.String("vehicle", "bike", "vehicle type")
	city := fs.String("city", "", "operating city")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 3 {
		return ErrUsage
	}
	req := model.RegisterRequest{Name: rest[0], Phone: rest[1], Password: rest[2], VehicleType: *vehicle, City: *city}
	return withApp(cfg, func(app *bootstrap.App) error {
		res, err := app.Auth.Register(ctx, req)
		if err != nil {
			return err
		}
		printWelcome(res)
		return nil
	})
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		if err := app.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Logged out")
		return nil
	})
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the signed-in partner" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		id, err := app.Auth.CurrentPartner(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Partner: %s (%s)\nPhone:   %s\n", id.Name, id.PartnerID, id.Phone)
		return nil
	})
}

func printWelcome(res *model.AuthResponse) {
	name := res.Partner.Name
	if name == "" {
		name = res.Partner.Phone
	}
	fmt.Fprintf(Out, "Logged in as %s\n", name)
}

func init() {
	RegisterCmd(sendOTPCmd{})
	RegisterCmd(verifyOTPCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(registerCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(whoamiCmd{})
}
