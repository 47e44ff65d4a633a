package auth

import "context"

// LoginTestChecker is used in unit tests instead of the redis backed LoginChecker.
type LoginTestChecker struct {
	LoggedSessions map[string]bool
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]bool{},
	}
}

func (ltc *LoginTestChecker) IsLogged(_ context.Context, token string) (bool, error) {
	return ltc.LoggedSessions[token], nil
}
