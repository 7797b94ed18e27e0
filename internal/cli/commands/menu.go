package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
)

// NewMenuCmd creates the interactive menu command
func NewMenuCmd(newApp AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Browse FlightDeck interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), newApp)
		},
	}
}

func runMenu(ctx context.Context, newApp AppFactory) error {
	a, err := start(ctx, newApp)
	if err != nil {
		return err
	}
	a.Views.SetInteractive(true)

	// Home and the menu depend on who is logged in
	select {
	case <-a.Session.Ready():
	default:
		fmt.Fprintln(a.Err, "Loading...")
		if err := a.WaitReady(ctx); err != nil {
			return err
		}
	}

	if err := a.Navigate(ctx, router.PathHome, nil); err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	unsubscribe := a.Session.Subscribe(func(session.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-changed:
		default:
		}

		items := views.Menu(a.Session.State())
		labels := menuLabels(items)

		idx, err := a.Prompt.Select("Navigate", labels)
		if err != nil {
			if views.IsCancelled(err) {
				return nil
			}
			return err
		}

		// The session can end while the prompt is open; never act on a stale menu
		select {
		case <-changed:
			if !slices.Equal(labels, menuLabels(views.Menu(a.Session.State()))) {
				fmt.Fprintln(a.Out, "Your session changed.")
				fmt.Fprintln(a.Out)
				continue
			}
		default:
		}

		switch target := items[idx].Path; target {
		case views.MenuQuit:
			return nil
		case views.MenuLogout:
			a.Session.Logout()
			fmt.Fprintln(a.Out, "✓ Logged out")
		default:
			if err := a.Navigate(ctx, target, nil); err != nil && !views.IsCancelled(err) {
				// The menu stays usable after any failure
				fmt.Fprintf(a.Err, "Error: %v\n", err)
			}
		}
		fmt.Fprintln(a.Out)
	}
}

func menuLabels(items []views.MenuItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}
