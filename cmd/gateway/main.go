// The gateway command runs the GaiaNet chat gateway: a hardened HTTP
// backend that validates, sanitizes, and privacy-screens chat requests
// before forwarding them to an OpenAI-compatible GaiaNet node.
//
// Usage:
//
//	# Start with environment configuration only
//	gateway run
//
//	# Start with a config file
//	gateway run --config /etc/gaianet/gateway.yaml
//
//	# Check a config file without starting
//	gateway validate --config gateway.yaml
//
//	# Show version information
//	gateway version
package main

func main() {
	Execute()
}
