// Package synthex provides a Go SDK for the Synthex synthetic data API.
//
// Synthex generates synthetic datasets from a schema, a handful of example
// records and free-form requirements. This SDK wraps its REST endpoints in
// typed methods and writes generated datasets to local files as the
// server streams them.
//
// # Installation
//
//	go get github.com/tanaos/synthex-go
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/tanaos/synthex-go"
//	)
//
//	func main() {
//	    client, err := synthex.NewClient("my-api-key")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    res, err := client.Jobs.GenerateData(context.Background(), &synthex.GenerateDataRequest{
//	        Schema: synthex.SchemaDefinition{
//	            "question": {Type: synthex.FieldString},
//	            "answer":   {Type: synthex.FieldString},
//	        },
//	        Examples: []synthex.Example{
//	            {"question": "What is 2+2?", "answer": "4"},
//	        },
//	        Requirements:    []string{"Arithmetic questions only"},
//	        NumberOfSamples: 50,
//	        OutputPath:      "./data/",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("wrote %d records to %s", res.Records, res.Path)
//	}
//
// # Client Configuration
//
// The client can be configured using functional options:
//
//	client, err := synthex.NewClient(apiKey,
//	    synthex.WithBaseURL("https://staging.example.com"),
//	    synthex.WithAuthScheme(synthex.AuthAPIKey),
//	    synthex.WithStreamTimeout(10*time.Minute),
//	    synthex.WithLogger(zapLogger),
//	)
//
// # Error Handling
//
// Failed calls return an [*Error] whose Kind tells what went wrong:
//
//	_, err := client.Users.Me(ctx)
//	switch {
//	case errors.Is(err, synthex.ErrAuthentication):
//	    // check the API key
//	case errors.Is(err, synthex.ErrRateLimit):
//	    // slow down
//	}
//
// Input problems are reported as [KindValidation] before any request is
// sent. A 2xx response whose body does not have the expected shape is a
// [*DecodeError] instead.
//
// # Thread Safety
//
// The [Client] is safe for concurrent use by multiple goroutines. A
// [Stream] must be consumed by one goroutine, though [Stream.Close] may be
// called from any.
package synthex
