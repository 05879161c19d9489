package commands

import (
	"context"
	"fmt"

	"PartnerApp/internal/cli/api"
	"PartnerApp/internal/cli/bootstrap"
	"PartnerApp/internal/config"
)

// reloginNotice — навигатор CLI: вместо перехода на экран входа печатает подсказку.
type reloginNotice struct{}

func (reloginNotice) ToLogin(_ context.Context, reason string) {
	switch reason {
	case api.ReasonLogout, api.ReasonNotSignedIn:
		return
	}
	fmt.Fprintf(Out, "Session ended (%s). Sign in again: send-otp <phone>, then verify-otp <phone> <code>\n", reason)
}

// withApp собирает зависимости, выполняет fn и закрывает хранилище.
func withApp(cfg *config.Config, fn func(app *bootstrap.App) error) error {
	app, err := bootstrap.NewApp(cfg, reloginNotice{})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
