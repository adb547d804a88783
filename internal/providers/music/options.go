package music

import "net/http"

type clientOptions struct {
	httpClient *http.Client
}

// Option configures a music provider client.
type Option func(*clientOptions)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func applyOptions(opts []Option) clientOptions {
	options := clientOptions{httpClient: defaultHTTPClient()}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
