// Package hub01 provides a typed client for the Hub01 Shop marketplace API.
//
// The client covers resource listing and search plus full CRUD for project
// versions. One Client owns the HTTP transport, base URL and bearer token;
// resource families are exposed as services sharing that transport:
//
//	client, err := hub01.NewClient("http://127.0.0.1:8000/api",
//		hub01.WithToken("your-api-token"),
//		hub01.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	page, err := client.Projects.List(ctx, hub01.ListProjectsOptions{
//		Search:  "storage",
//		PerPage: 25,
//	})
//
// Listing endpoints return a Page[T] mirroring the server's {data, meta}
// envelope; the client never follows pagination on its own.
//
// # Error Handling
//
// Every failure surfaces as a *APIError. Status codes 401, 403, 404 and 422
// additionally unwrap to sentinel errors, so both styles work:
//
//	_, err := client.Projects.Get(ctx, "missing")
//	if errors.Is(err, hub01.ErrNotFound) {
//		// handle missing project
//	}
//
//	var apiErr *hub01.APIError
//	if errors.As(err, &apiErr) && apiErr.IsValidation() {
//		fmt.Println(apiErr.Errors) // field-level detail from 422 responses
//	}
//
// The client performs no retries and no response caching; a failed request
// surfaces immediately.
package hub01
