package views

import (
	"context"
	"strconv"

	"github.com/flightdeck360/flightdeck/internal/cli/forms"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

// Login collects credentials and starts a session. On success it moves on to home.
func (v *Views) Login(ctx context.Context, req router.Request) error {
	form := forms.LoginForm{Email: req.Params[ParamEmail], Password: req.Params[ParamPassword]}

	if form.Email == "" {
		def := ""
		if v.prefs != nil {
			def = v.prefs.LastEmail()
		}
		email, err := v.prompt.Input("Email", def)
		if err != nil {
			return err
		}
		form.Email = email
	}

	if form.Password == "" {
		password, err := v.prompt.Password("Password")
		if err != nil {
			return err
		}
		form.Password = password
	}

	if err := form.Validate(); err != nil {
		return err
	}

	v.printf("Logging in to %s...\n", v.api.BaseURL())
	user, err := v.session.Login(ctx, form.Email, form.Password)
	if err != nil {
		return err
	}

	v.rememberEmail(user.Email)
	v.success("Login successful!")
	v.printf("  User: %s\n", describe(user))

	v.router.Redirect(router.PathHome)
	return nil
}

// Register collects the sign-up form and creates an account
func (v *Views) Register(ctx context.Context, req router.Request) error {
	var form forms.RegisterForm
	var err error

	if form.Name, err = v.ask(req.Params, ParamName, "Full name", ""); err != nil {
		return err
	}
	if form.Email, err = v.ask(req.Params, ParamEmail, "Email", ""); err != nil {
		return err
	}
	if form.Password = req.Params[ParamPassword]; form.Password == "" {
		if form.Password, err = v.prompt.Password("Password"); err != nil {
			return err
		}
	}
	if form.ConfirmPassword = req.Params[ParamConfirm]; form.ConfirmPassword == "" {
		if form.ConfirmPassword, err = v.prompt.Password("Confirm password"); err != nil {
			return err
		}
	}
	if form.ContactNumber, err = v.ask(req.Params, ParamContact, "Contact number", ""); err != nil {
		return err
	}
	if admin, ok := req.Params[ParamAdmin]; ok {
		form.Admin, _ = strconv.ParseBool(admin)
	} else if v.interactive {
		if form.Admin, err = v.prompt.Confirm("Register as admin"); err != nil {
			return err
		}
	}

	// Validation failures never reach the network
	if err := form.Validate(); err != nil {
		return err
	}

	user, err := v.session.Register(ctx, session.RegisterInput{
		Name:          form.Name,
		Email:         form.Email,
		Password:      form.Password,
		ContactNumber: form.ContactNumber,
		Role:          form.Role(),
	})
	if err != nil {
		return err
	}

	v.rememberEmail(user.Email)
	v.success("Registration successful!")
	v.printf("  User: %s\n", describe(user))

	v.router.Redirect(router.PathHome)
	return nil
}

func (v *Views) rememberEmail(email string) {
	if v.prefs == nil {
		return
	}
	if err := v.prefs.RememberEmail(email); err != nil {
		v.logger.Warn().Err(err).Msg("Failed to save last email")
	}
}
