// Package toolforge embeds the toolforge fuzzy tool search in a Go program,
// without running the HTTP service.
//
// The client reads candidates from one source (an in-memory list, a YAML
// catalog, Redis hashes or a Supabase table), ranks them with the same engine
// as the service and memoizes results in a bounded in-process cache, with an
// optional Redis tier shared between processes.
//
//	client, _ := toolforge.New(ctx, toolforge.WithCatalogFile("data/catalog.yaml"))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, toolforge.Query{Text: "writ", SortBy: toolforge.SortRating})
//	for _, t := range res.Tools {
//	    fmt.Println(t.Name, t.Rating)
//	}
//
//	names, _ := client.Suggest(ctx, "wr", 5)
package toolforge
