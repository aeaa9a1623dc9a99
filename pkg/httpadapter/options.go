package httpadapter

import "github.com/google/uuid"

// exchangeIDLength is the number of UUID characters kept in an exchange ID.
const exchangeIDLength = 8

// Option customizes a Transport or a Middleware.
type Option func(*options)

type options struct {
	newExchangeID func() string
}

func newOptions(opts []Option) options {
	result := options{
		newExchangeID: randomExchangeID,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}

	if result.newExchangeID == nil {
		result.newExchangeID = func() string { return "" }
	}

	return result
}

// WithExchangeIDGenerator replaces the generator of the IDs that pair request and response blocks.
// A nil generator turns exchange IDs off.
func WithExchangeIDGenerator(generate func() string) Option {
	return func(o *options) {
		o.newExchangeID = generate
	}
}

func randomExchangeID() string {
	return uuid.NewString()[:exchangeIDLength]
}
