package cli

import (
	"errors"
	"fmt"
)

func (a *App) hashSecret() error {
	secret, err := GetSecret(a.reader, "Secret", a.out)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("empty secret")
	}

	h, err := a.hash(secret)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, h)
	return nil
}
