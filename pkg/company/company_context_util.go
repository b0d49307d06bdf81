package company

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const CompanyKey contextKey = "company"

var ErrNoCompany = errors.New("company not found")

// CurrentId retrieves the current company's ID from the context. Returns ErrNoCompany if not present.
func CurrentId(ctx context.Context) (int, error) {
	c, ok := ctx.Value(CompanyKey).(Company)
	if !ok {
		log.Trace("company not found in context")
		return 0, ErrNoCompany
	}
	return c.Id, nil
}

func CurrentCompany(ctx context.Context) (Company, error) {
	c, ok := ctx.Value(CompanyKey).(Company)
	if !ok {
		log.Trace("company not found in context")
		return Company{}, ErrNoCompany
	}
	return c, nil
}

func WithCompany(ctx context.Context, c Company) context.Context {
	return context.WithValue(ctx, CompanyKey, c)
}
