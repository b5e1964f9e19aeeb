// Package mindsclient provides the primary entry point for constructing a
// Minds API client that implements the minds.Client interface.
//
// It layers configuration defaults, HTTP transport and API key authentication
// on top of the resource interfaces and types defined in the minds package.
// Most applications should import mindsclient to build a client, then use the
// returned minds.Client to reach Datasources() and Minds().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/minds/pkg/minds"
//	  "github.com/fivetwenty-io/minds/pkg/mindsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Default endpoint (https://mdb.ai/api).
//	  cli, err := mindsclient.NewWithAPIKey("my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or a self-hosted deployment with a custom project and retries.
//	  cli, err = mindsclient.New(&minds.Config{
//	    APIKey:   "my-api-key",
//	    BaseURL:  "minds.internal.example.com/api",
//	    Project:  "analytics",
//	    RetryMax: 3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  mind, err := cli.Minds().Create(ctx, "helper", &minds.MindConfig{
//	    ModelName:   "gpt-4o",
//	    Datasources: []string{"sales"},
//	  }, true)
//	  if err != nil { log.Fatal(err) }
//	  _ = mind
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithAPIKey and
// NewWithEndpoint for the common cases.
package mindsclient
