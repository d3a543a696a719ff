package auth

import (
	"context"

	"go.uber.org/zap"

	"cheermate/internal/app/system/retrypolicy"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

// LoginOptions tunes LoginUpstream for its two callers.
type LoginOptions struct {
	// SkipUserProfile stops after the cookie is captured. The onboarding
	// completion uses this: it only needs a signed-in session, the next page
	// load fetches the profile anyway.
	SkipUserProfile bool
}

// LoginOutcome is a captured upstream session plus the member record, when
// one was fetched.
type LoginOutcome struct {
	User   *models.User
	Cookie string
}

// LoginUpstream signs in against the praise service. Some backend versions
// return the member without an id on login; in that case the profile is
// refetched under the ProfileFetch retry policy so the caller always ends up
// with a usable record.
func LoginUpstream(ctx context.Context, api *backend.Client, email, password string, opts LoginOptions, logger *zap.Logger) (*LoginOutcome, error) {
	res, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	out := &LoginOutcome{User: res.User, Cookie: res.Cookie}
	if opts.SkipUserProfile {
		return out, nil
	}

	if !res.HasID {
		logger.Warn("login response lacked a member id; falling back to profile fetch")
		sess := api.WithAuth(res.Cookie)
		err := retrypolicy.ProfileFetch.Do(ctx, func(ctx context.Context) error {
			u, err := sess.Me(ctx)
			if err != nil {
				return err
			}
			out.User = u
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	out.User.Normalize()
	return out, nil
}

// LogoutUpstream invalidates the upstream session. Failures are logged and
// swallowed: the browser session is cleared regardless, and surfacing an
// error on the way out helps nobody.
func LogoutUpstream(ctx context.Context, api *backend.Client, cookie string, logger *zap.Logger) {
	if cookie == "" {
		return
	}
	if err := api.WithAuth(cookie).Logout(ctx); err != nil {
		logger.Warn("upstream logout failed", zap.Error(err))
	}
}
