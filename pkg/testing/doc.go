// Package testing provides a testing SDK for running an item server inside
// Go tests.
//
// New starts a server backed by a fresh store on a random port and stops it
// when the test completes:
//
//	func TestInventory(t *testing.T) {
//	    srv := itemdtest.New(t, itemdtest.WithSeed(
//	        map[string]any{"name": "Widget", "qty": 3},
//	    ))
//
//	    // Code under test talks to srv.URL()
//	    resp, err := http.Get(srv.URL() + "/api/items/1")
//	    ...
//
//	    srv.AssertCalled(t, "GET", "/api/items/{id}")
//	    srv.AssertItem(t, 1, `{"id":1,"name":"Widget","qty":3}`)
//	}
//
// # Building Items
//
// Items can be placed in the store directly, bypassing HTTP and the request
// log:
//
//	item := srv.Item().Set("name", "Gadget").Set("tags", []string{"a"}).Create()
//
// # Request Log
//
// Every request the server handles is recorded. Requests returns them newest
// first, and each RequestLog carries assertion helpers:
//
//	last := srv.Requests()[0]
//	last.AssertStatus(t, http.StatusCreated)
//	last.AssertJSONField(t, "name", "Widget")
//
// Paths in AssertCalled and friends may use {name} segments to match any
// value.
package testing
