package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benvon/taskdesk/internal/location"
	"github.com/benvon/taskdesk/internal/session"
)

// NewLocateCmd creates the locate command
func NewLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate <lat> <lon>",
		Short: "Resolve coordinates into a place description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			text, err := describeCoordinates(cmd.Context(), app, location.Coordinates{Latitude: lat, Longitude: lon})
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	return cmd
}

// describeCoordinates resolves coordinates through the configured
// gazetteer, degrading to the formatted coordinate pair when resolution is
// unavailable or fails. Denied permission is the only hard error.
func describeCoordinates(ctx context.Context, app *App, coords location.Coordinates) (string, error) {
	authorizer := location.NewStaticAuthorizer(app.Config.Location.Enabled)
	if authorizer.Request() != location.AuthorizationGranted {
		return "", location.ErrDenied
	}

	resolver, err := location.LoadGazetteer(app.Config.Location.GazetteerPath, app.Config.Location.RadiusKm)
	if err != nil {
		app.Logger.Warn("gazetteer unavailable, using coordinate fallback", zap.Error(err))
		return location.FormatCoordinates(coords), nil
	}

	return location.Describe(ctx, resolver, coords), nil
}

// fillLocationFromCoordinates runs a location fetch against the session,
// staging either the resolved description or the coordinate fallback. A
// permission denial leaves the staged location untouched.
func fillLocationFromCoordinates(ctx context.Context, app *App, sess *session.Session, lat, lon float64) {
	token := sess.BeginLocationFetch()

	text, err := describeCoordinates(ctx, app, location.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		app.Logger.Warn("location fetch unavailable", zap.Error(err))
		sess.CancelLocationFetch()
		return
	}

	sess.ApplyLocationResult(token, text)
}
