// Package dinekit embeds the dinekit derived-state engine in a Go program
// without the HTTP server.
//
// A Client reads a YAML catalog of record collections and restaurants once,
// then answers browse, summary, cart and reservation-slot questions in process.
//
//	client, _ := dinekit.New(
//	    dinekit.WithCatalogFile("config/catalog.yaml"),
//	    dinekit.WithPricing(decimal.NewFromInt(5), decimal.RequireFromString("2.50")),
//	)
//
//	items, _ := client.Browse("menu").
//	    Where(dinekit.Text("paneer", "name", "tags"), dinekit.AtMost("price", 15)).
//	    SortBy("rating", dinekit.Desc).
//	    Do(ctx)
//
//	carts := client.Carts()
//	id, _ := carts.Create(ctx)
//	_, _ = carts.Add(ctx, id, "m-101", 2)
//	quote, _ := carts.Quote(ctx, id)
//
//	slots, _ := client.Reservations().Slots(ctx, "spice-route")
package dinekit
