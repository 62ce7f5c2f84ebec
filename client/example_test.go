package client_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/verifykit/outbound/client"
)

type stubTransport struct{}

func (stubTransport) Send(_ context.Context, _ client.Request) (*client.Result, error) {
	return &client.Result{StatusCode: http.StatusOK, Body: []byte(`{"verified":true}`)}, nil
}

func Example() {
	c, err := client.New(client.Config{
		Resource:         "onfido",
		FailureThreshold: 3,
		CacheDefaultTTL:  time.Hour,
	}, stubTransport{})
	if err != nil {
		panic(err)
	}

	resp, err := c.Call(context.Background(), client.Request{
		Method:   http.MethodPost,
		Endpoint: "identity/verify",
		Payload:  map[string]any{"document": "passport"},
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(resp.Success, string(resp.Data))
	// Output: true {"verified":true}
}

func Example_errorKinds() {
	c, err := client.New(client.Config{Resource: "experian"}, stubTransport{})
	if err != nil {
		panic(err)
	}

	resp, _ := c.Call(context.Background(), client.Request{
		Method:   http.MethodGet,
		Endpoint: "credit/check",
	})

	switch resp.ErrorKind {
	case client.KindNone:
		fmt.Println("ok")
	case client.KindCircuitOpen:
		fmt.Println("provider unavailable")
	case client.KindRateLimited:
		fmt.Println("over quota")
	default:
		fmt.Println("failed:", resp.ErrorKind)
	}
	// Output: ok
}
