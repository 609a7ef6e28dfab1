package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lylemi/tlscompare/internal/fetch"
)

const (
	endpoint  = "https://tls.peet.ws/api/all"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// rawFetcher is implemented by both fetchers in internal/fetch.
type rawFetcher interface {
	FetchRaw(ctx context.Context) (map[string]any, error)
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "help" {
		fmt.Println("Usage: rawfingerprint [standard|emulating] [profile]")
		fmt.Println("Prints the raw echo endpoint response seen by one client.")
		return
	}

	mode := "emulating"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	profile := "chrome_124"
	if len(os.Args) > 2 {
		profile = os.Args[2]
	}

	var f rawFetcher
	switch mode {
	case "standard":
		sf, err := fetch.NewStandardFetcher(endpoint, map[string]string{"User-Agent": userAgent}, 20*time.Second, "")
		if err != nil {
			log.Fatalf("Error creating client: %v", err)
		}
		f = sf
	case "emulating":
		f = fetch.NewEmulatingFetcher(fetch.EmulatingOptions{
			Endpoint:  endpoint,
			UserAgent: userAgent,
			Profile:   profile,
		}, fetch.NewProfileTable(time.Hour, fetch.BuiltinProfiles))
	default:
		log.Fatalf("unknown mode %q, want standard or emulating", mode)
	}

	raw, err := f.FetchRaw(context.Background())
	if err != nil {
		log.Fatalf("Error making request: %v", err)
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding response: %v", err)
	}
	fmt.Printf("Response from %s (%s):\n%s\n", endpoint, mode, out)
}
