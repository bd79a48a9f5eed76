package config

import "flag"

var (
	databaseDSN    string
	databaseDriver string
	masterKey      string
	keyScheme      int
	jsonConfigPath string
)

// Flags are registered at package load so the main package may call
// flag.Parse before config assembly and inspect flag.Args for subcommands.
func init() {
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (pgx or sqlite3)")
	flag.StringVar(&masterKey, "master-key", "", "Master encryption key")
	flag.IntVar(&keyScheme, "key-scheme", 0, "Key derivation scheme for new records (1 legacy, 2 hkdf)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
}

// ParseFlags parses all configuration flags. Safe to call after the caller
// has already run flag.Parse.
//
// Flags:
//
//	-d database DSN
//	-driver database driver name ("pgx" or "sqlite3")
//	-master-key master encryption key
//	-key-scheme key derivation scheme for new records (1 legacy, 2 hkdf)
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	if !flag.Parsed() {
		flag.Parse()
	}

	return &StructuredConfig{
		App: App{
			MasterKey: masterKey,
			KeyScheme: keyScheme,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
