// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Call LoadDotEnv first to pick up a local .env file:

	_ = cliparse.LoadDotEnv(".env")

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: memory, sqlite or postgres (default: memory)
  - DatabaseURL: DSN for the SQL stores (required for postgres)
  - IPHashSalt: Secret for hashing client IPs (required)
  - DefaultSource: Source tag for signups without one (default: website)
  - ProductName: Name used in signup messages (default: SiikHub)
  - AllowedOrigins: CORS origins
  - Version: Reported by /health (default: 1.0.0)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p        Server port
	-t        Store type
	-d        Database URL
	-ip-salt  IP hash salt
	-source   Default source tag

# Environment Variables

	PORT             → -p
	STORE_TYPE       → -t
	DATABASE_URL     → -d
	IP_HASH_SALT     → -ip-salt
	DEFAULT_SOURCE   → -source
	PRODUCT_NAME
	ALLOWED_ORIGINS  (comma separated)
	SERVICE_VERSION
	LOG_LEVEL

CLI flags take precedence over environment variables, which take
precedence over .env files.

# Validation

ParseFlags returns an error if:

  - IP_HASH_SALT is missing
  - STORE_TYPE is postgres and DATABASE_URL is missing
  - STORE_TYPE, PORT or LOG_LEVEL is not a valid value
*/
package cliparse
