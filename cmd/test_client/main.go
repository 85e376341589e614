package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	export := flag.Bool("export", false, "also call sheets_export after submitting")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "job-finder-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testSubmitWithoutRole(ctx, session)
	testFullCycle(ctx, session, *export)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

// Only meaningful on a fresh server; a restored application already has a role.
func testSubmitWithoutRole(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: submit_application without jobRole")

	state := call(ctx, session, "form_state", nil)
	if state == nil {
		return
	}

	res := call(ctx, session, "submit_application", nil)
	if res != nil && res.IsError {
		fmt.Println("submit rejected as expected")
	}
}

func testFullCycle(ctx context.Context, session *mcp.ClientSession, export bool) {
	fmt.Println("\nTEST: create, confirm, create again")

	for i, name := range []string{"Amy", "Ben"} {
		fill(ctx, session, map[string]string{
			"name":       name,
			"age":        fmt.Sprint(30 + i),
			"email":      fmt.Sprintf("%s@example.com", name),
			"experience": fmt.Sprint(5 + i),
			"jobRole":    "Designer",
			"company":    "Figma",
		})

		if res := call(ctx, session, "submit_application", nil); res == nil || res.IsError {
			log.Printf("submit_application failed for %s", name)
			return
		}

		if export {
			call(ctx, session, "sheets_export", map[string]any{"write_header": i == 0})
		}

		if res := call(ctx, session, "reset_application", nil); res == nil || res.IsError {
			log.Printf("reset_application failed for %s", name)
			return
		}
	}

	call(ctx, session, "company_keypoints", map[string]any{"company": "Canva"})
	fmt.Println("full cycle passed")
}

func fill(ctx context.Context, session *mcp.ClientSession, values map[string]string) {
	// jobRole before company, since setting a role clears the company
	for _, field := range []string{"name", "age", "email", "experience", "jobRole", "company"} {
		call(ctx, session, "set_field", map[string]any{"field": field, "value": values[field]})
	}
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return nil
	}

	printResult(name, res)
	return res
}

func printResult(name string, res *mcp.CallToolResult) {
	prefix := name
	if res.IsError {
		prefix += " (error)"
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Printf("[%s]\n%s\n", prefix, txt.Text)
		}
	}
}
