// Package minds provides types, interfaces, and errors for working with the
// Minds API.
//
// # Overview
//
// The API manages two resource kinds: datasources (connections to SQL
// databases) and minds (models that answer questions over datasources). This
// package defines the resource records, the create configs, and the
// resource-oriented client interfaces. A concrete client is provided by the
// mindsclient package.
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
//	  cli, err := mindsclient.NewWithAPIKey("my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  ds, err := cli.Datasources().Create(ctx, &minds.DatasourceConfig{
//	    Name:           "sales",
//	    Engine:         "postgres",
//	    ConnectionData: map[string]any{"host": "db.example.com"},
//	  }, true)
//	  if err != nil { log.Fatal(err) }
//	  _ = ds
//	}
//
// # Create or replace
//
// Create with replace set to true drops an existing resource of the same name
// before creating it, then fetches the new resource so the returned record
// reflects the server's canonical view. The sequence is not atomic: two
// concurrent replacing creates for the same name may interleave at the server.
//
// # Errors
//
// Every failure is an *Error carrying an ErrorKind: NotFound, Forbidden,
// Unauthorized, Unsupported or Unknown. Use errors.Is with the sentinel
// values (ErrNotFound, ...) or helpers such as IsNotFound. Each kind also
// carries a canonical HTTP status code. Configs rejected before any request
// is sent wrap ErrValidation instead.
package minds
