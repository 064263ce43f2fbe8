package cli

import (
	"context"
	"errors"
)

func (a *App) Seed(ctx context.Context) error {
	seed, err := GetSecret(a.reader, "Encryption seed", a.writer())
	if err != nil {
		return err
	}
	if err := a.seeds.SetSeed(ctx, seed); err != nil {
		return err
	}
	if seed == "" {
		a.println("Seed cleared; files are now encrypted with the empty seed.")
		return nil
	}
	a.println("Seed saved.")
	return nil
}

func (a *App) Token(ctx context.Context, args []string) error {
	var token string
	switch len(args) {
	case 0:
		t, err := GetSecret(a.reader, "Session token", a.writer())
		if err != nil {
			return err
		}
		token = t
	case 1:
		token = args[0]
	default:
		return usage("token [value]")
	}
	if token == "" {
		return errors.New("empty token")
	}

	sess, err := a.sessions.SetToken(ctx, token)
	if err != nil {
		return err
	}
	a.setUser(sess.Username)
	a.printf("Session set for %s.\n", sess.Username)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	sess, offline, err := a.sessions.Whoami(ctx)
	if err != nil {
		return err
	}
	a.setUser(sess.Username)
	if offline {
		a.printf("%s (from the stored token; backend unreachable)\n", sess.Username)
		return nil
	}
	a.println(sess.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.setUser("")
	a.println("Logged out.")
	return nil
}
