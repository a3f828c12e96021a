package cli

import "errors"

// Authorization failures deliberately read the same whether the caller is
// logged out or logged in with the wrong role.
func errNotPermitted() error {
	return errors.New("not logged in; run `taskdesk login`")
}

func errNotLoggedIn() error {
	return errors.New("not logged in; run `taskdesk login`")
}
