package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the environment-sourced configuration surface of the bot.
type Config struct {
	BotToken         string
	BotName          string
	MaxFileSizeMB    int
	PostgresDSN      string
	ForceJoinChannel string
	OwnerID          int64

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	cookiesData string
	cookiesPath string
}

func FromEnv() *Config {
	c := &Config{
		BotToken:         strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		BotName:          strings.TrimSpace(os.Getenv("BOT_NAME")),
		MaxFileSizeMB:    getEnvInt("MAX_FILE_SIZE_MB", 300),
		PostgresDSN:      strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		ForceJoinChannel: strings.TrimSpace(os.Getenv("FORCE_JOIN_CHANNEL")),
		OwnerID:          getEnvInt64("OWNER_ID", 0),
		RedisHost:        strings.TrimSpace(os.Getenv("REDIS_HOST")),
		RedisPort:        strings.TrimSpace(os.Getenv("REDIS_PORT")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		cookiesData:      os.Getenv("YTDLP_COOKIES"),
	}
	if c.BotName == "" {
		c.BotName = "moxi - YT downloader"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	return c
}

// WriteCookiesFile persists the serialized browser cookies to a transient
// file for yt-dlp. No-op when no cookie payload is configured.
func (c *Config) WriteCookiesFile() error {
	if strings.TrimSpace(c.cookiesData) == "" {
		return nil
	}
	path := filepath.Join(os.TempDir(), "moxi_cookies.txt")
	if err := os.WriteFile(path, []byte(c.cookiesData), 0600); err != nil {
		return err
	}
	c.cookiesPath = path
	return nil
}

// CookiesPath returns the cookies file path, empty when not configured.
func (c *Config) CookiesPath() string {
	return c.cookiesPath
}

func (c *Config) RemoveCookiesFile() {
	if c.cookiesPath == "" {
		return
	}
	_ = os.Remove(c.cookiesPath)
	c.cookiesPath = ""
}

func getEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvInt64(name string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// LoadEnvFile loads KEY=VALUE pairs from a local env file into the process
// environment. Existing variables are not overwritten. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		v = strings.TrimSpace(v)
		if len(v) >= 2 {
			if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
				v = v[1 : len(v)-1]
			}
		}
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		_ = os.Setenv(k, v)
	}
	return sc.Err()
}
