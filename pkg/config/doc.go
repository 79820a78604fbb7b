// Package config provides configuration loading for the GaiaNet chat
// gateway.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables (GAIANET_BASE_URL, GAIANET_API_KEY, GAIANET_MODEL,
// SERVER_HOST, SERVER_PORT, RATE_LIMIT_PER_HOUR, MAX_MESSAGE_LENGTH,
// ENABLE_DATA_PRIVACY_FILTER), so the gateway can run both from a config
// file and from a bare container environment.
//
// Example:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.ListenAddress())
package config
