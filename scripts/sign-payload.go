package main

import (
	"fmt"
	"io"
	"os"

	"github.com/vj-tring/SalesBoostAI-V1/internal/util"
)

// Computes the X-Webhook-Signature value for a payload, for exercising the
// signed inbound chat endpoint by hand:
//
//	echo -n '{"sessionId":"s1","message":"hi"}' | go run scripts/sign-payload.go <secret>
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/sign-payload.go <secret> < payload\n")
		os.Exit(1)
	}

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(util.Sign(os.Args[1], payload))
}
