// Package config loads runtime configuration for the server and Discord bot
// binaries from environment variables, via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Server holds everything cmd/server needs to stand up the HTTP/WS API.
type Server struct {
	Port      string
	RateLimit int
	JWTSecret string
}

// Bot holds everything cmd/discordbot needs to connect to Discord.
type Bot struct {
	DiscordToken string
	DiscordAppID string
	JWTSecret    string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("STARFLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadServer reads STARFLEET_PORT, STARFLEET_RATE_LIMIT and STARFLEET_JWT_SECRET,
// falling back to sane defaults for local development.
func LoadServer() (Server, error) {
	v := newViper()
	v.SetDefault("port", "8080")
	v.SetDefault("rate_limit", 20)
	v.SetDefault("jwt_secret", "secret")

	return Server{
		Port:      v.GetString("port"),
		RateLimit: v.GetInt("rate_limit"),
		JWTSecret: v.GetString("jwt_secret"),
	}, nil
}

// LoadBot reads STARFLEET_DISCORD_TOKEN, STARFLEET_DISCORD_APP_ID and
// STARFLEET_JWT_SECRET. The first two are required; there is no sensible default for
// a bot identity.
func LoadBot() (Bot, error) {
	v := newViper()
	v.SetDefault("jwt_secret", "secret")

	token := v.GetString("discord_token")
	if token == "" {
		return Bot{}, fmt.Errorf("config: STARFLEET_DISCORD_TOKEN is required")
	}
	appID := v.GetString("discord_app_id")
	if appID == "" {
		return Bot{}, fmt.Errorf("config: STARFLEET_DISCORD_APP_ID is required")
	}

	return Bot{
		DiscordToken: token,
		DiscordAppID: appID,
		JWTSecret:    v.GetString("jwt_secret"),
	}, nil
}
