// Package config provides configuration types and loading for the itemd server.
//
// ServerConfig carries everything the serve command needs: listen address,
// HTTP timeouts, request body limit, CORS policy, logging and seed files.
//
// Configuration is layered, lowest to highest precedence:
//
//  1. DefaultServerConfig
//  2. A YAML or JSON config file (LoadFromFile)
//  3. Environment variables (ApplyEnv, ITEMD_* prefix plus PORT)
//  4. Command-line flags, applied by the caller
//
// A typical YAML file:
//
//	port: 5000
//	maxBodySize: 1048576
//	cors:
//	  enabled: true
//	  allowOrigins: ["http://localhost:*", "https://*.example.com"]
//	log:
//	  level: debug
//	  format: json
//	seed:
//	  - "testdata/**/*.yaml"
package config
