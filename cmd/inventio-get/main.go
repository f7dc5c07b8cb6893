// Command inventio-get fetches one response from the Inventio API and prints
// it as JSON. A development helper for poking at endpoints.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/nordicdata/tap-inventio/pkg/config"
	"github.com/nordicdata/tap-inventio/pkg/xmlconv"
)

func main() {
	os.Exit(run())
}

func run() int {
	rawURL := flag.String("url", "", "complete url query")
	company := flag.String("company", "", "company")
	endpointType := flag.String("type", "", "the 'type' of endpoint")
	token := flag.String("token", "", "endpoint token")
	limit := flag.Int("limit", 0, "limit the response from the API")
	pretty := flag.Bool("pretty", false, "pretty format as indented json")
	flag.Parse()

	haveParts := *company != "" && *endpointType != "" && *token != ""
	if (*rawURL != "") == haveParts { // xor: supply exactly one form
		log("supply only -url, or all of -company, -type, and -token")
		return 2
	}

	target := *rawURL
	if target == "" {
		query := url.Values{}
		query.Set("type", *endpointType)
		query.Set("token", *token)
		if *limit > 0 {
			query.Set("limit", fmt.Sprint(*limit))
		}
		target = fmt.Sprintf("%s/%s/smartapi/?%s", config.DefaultBaseURL, *company, query.Encode())
	}
	log("getting from %q", target)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log("failed to build request: %v", err)
		return 1
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log("request failed: %v", err)
		return 1
	}
	defer resp.Body.Close()

	body, err := xmlconv.Decode(resp.Body)
	if err != nil {
		log("failed to decode response: %v", err)
		return 1
	}

	exitCode := 0
	if _, ok := body["error"]; ok {
		log("error: %v", body)
		exitCode = 1
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(body); err != nil {
		log("failed to render json: %v", err)
		return 1
	}

	return exitCode
}

func log(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
