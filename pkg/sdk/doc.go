// Package sdk provides a Go client for the lexdex catalog API.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	entries, _ := client.Search(ctx, sdk.FilterSpec{Search: "cat", Tag: "pet"})
//	tags, _ := client.Tags(ctx)
//	stats, _ := client.Reload(ctx)
package sdk
