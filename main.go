package main

import (
	"context"
	"os"

	"github.com/lylemi/tlscompare/internal/fetch"
	"github.com/lylemi/tlscompare/internal/fingerprint"
)

func main() {
	ctx := context.Background()
	table := fetch.NewProfileTable(Config.ProfileTTL, fetch.BuiltinProfiles)

	NewReporter(os.Stdout, os.Stderr).Run(ctx, []Section{
		{
			Title: "A) Request with net/http (Go crypto/tls stack)",
			Name:  "net/http",
			Fetch: func(ctx context.Context) (*fingerprint.Record, error) {
				f, err := fetch.NewStandardFetcher(Config.Endpoint, Config.StandardHeaders, Config.StandardTimeout, Config.StandardProxy)
				if err != nil {
					return nil, err
				}
				return f.Fetch(ctx)
			},
		},
		{
			Title: "B) Request with tls-client (browser impersonation)",
			Name:  "tls-client",
			Fetch: fetch.NewEmulatingFetcher(emulatingOptions(), table).Fetch,
		},
	})
}

func emulatingOptions() fetch.EmulatingOptions {
	return fetch.EmulatingOptions{
		Endpoint:  Config.Endpoint,
		UserAgent: Config.UserAgent,
		Profile:   Config.BrowserProfile,
		ProxyURL:  Config.EmulationProxy,
		Debug:     Config.Debug,

		InsecureSkipVerify: Config.EmulationInsecure,
	}
}
