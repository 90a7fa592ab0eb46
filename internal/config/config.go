package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Auth
	}

	Database struct {
		Path string
	}

	Auth struct {
		// HashPasswords switches stored credentials from the legacy
		// plaintext format to bcrypt hashes. Login accepts both forms,
		// so the flag can be flipped on an existing store.
		HashPasswords bool
		BcryptCost    int
	}
)

const DefaultDatabasePath = "./bookshelf.db"

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("auth_hash_passwords", false)
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			HashPasswords: v.GetBool("AUTH_HASH_PASSWORDS"),
			BcryptCost:    v.GetInt("AUTH_BCRYPT_COST"),
		},
	}
}
