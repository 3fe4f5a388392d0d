// Package cli provides the command-line interface for itemd.
//
// Commands:
//   - serve: Run the item server in the foreground with graceful shutdown
//   - items: List, get, create, update and delete items on a running server
//   - admin: Show store statistics and reset the store to its seed data
//   - health: Check that a server is reachable
//   - version: Show itemd version
//
// Client commands resolve the server address from --url, then ITEMD_URL,
// then .itemdrc.yaml in the working directory, then the global config file.
//
// Usage:
//
//	itemd serve --port 5000 --seed 'seed/**/*.yaml'
//	itemd items create --set name=Widget --set qty=3
//	itemd items list --filter 'qty > 2'
//	itemd admin reset
package cli
