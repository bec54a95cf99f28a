package authflow

import "context"

// Navigator sends the user agent to the provider's authorization page.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}
